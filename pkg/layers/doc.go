// Package layers splits a form description (a property schema plus a
// presentation schema) into a tree of tabs.
//
// Fields are routed to tabs through the "ui:tabID" presentation hint. The hint
// holds the full nesting path of a field, outermost tab first:
//
//	{
//	  "street": {"ui:tabID": ["address", "home"]},
//	  "email":  {"ui:tabID": "contact"}
//	}
//
// Split builds one Node per tab level. Each node keeps the untagged fields of
// its level in its own schema and recurses into a child node for every tab
// found at that level. A node also tracks which of its children is active, so
// a renderer can ask for the active chain of sub-forms with Materialize.
//
// Nodes are not safe for concurrent mutation. SetActivePath is the only
// method that changes a tree after it is built.
package layers
