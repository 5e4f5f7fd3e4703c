// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package jscope builds attribute trees from JSON documents.
//
// # Coordinators
//
// A Coordinator walks a parsed document and offers each member to a chain of
// Handler values, in order. The first handler whose StartHandler method
// accepts a member handles it: if the member is an object, its members are
// walked recursively, and then the handler's EndHandler method is called. A
// member no handler accepts is skipped. Each element of an array member is
// offered separately, with its index:
//
//	c := jscope.NewCoordinator(data, h1, h2)
//	if err := c.ParseFile("config.json"); err != nil {
//	   log.Fatalf("Parse failed: %v", err)
//	}
//
// All handlers of a coordinator share one SharedData value, which embeds a
// SharedContext tracking the current nesting depth.
//
// # Building Trees
//
// The TableHandler type interprets a document of attribute blocks, and
// populates the scope.Scope held by a *TableData:
//
//	{
//	  "Name": {"type": "string", "value": "Test Name"},
//	  "Tags": {"type": "string", "value": ["A", "B", "C"]},
//	  "Address": {"type": "table", "value": {
//	    "City": {"type": "string", "value": "Orlando"}
//	  }}
//	}
//
// The "type" of an attribute names its element type. The optional "class" of
// a table attribute names a class in the scope.Registry of the TableData, and
// each nested scope is constructed from that class.
//
//	td := jscope.NewTableData(nil, nil)
//	c := jscope.NewCoordinator(td, jscope.NewTableHandler())
//	if err := c.ParseString(input); err != nil {
//	   log.Fatalf("Parse failed: %v", err)
//	}
//	fmt.Println(td.Root())
//
// The Marshal function renders a scope back into this form.
//
// # Cloning
//
// A Coordinator is not safe for concurrent use. The Clone method makes an
// independent copy of a coordinator, with fresh handlers and shared data made
// by their Create methods. To parse several files concurrently, use
// ParseFiles, which parses each file with its own clone.
//
// # Errors
//
// Errors reported by a Coordinator have concrete type *Error, whose Kind
// distinguishes misuse of the coordinator (KindConfig), unreadable input
// (KindIO), malformed JSON (KindSyntax), and documents a handler rejects
// (KindStructure).
package jscope
