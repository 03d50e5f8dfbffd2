// Package decl loads capability sets from YAML or TOML declaration files.
//
// A declaration file lists sets by name. Sets extend each other by name,
// within one file or across all files passed to a single Load:
//
//	sets:
//	  - name: Greeter
//	    methods:
//	      - name: SayHi
//	        params: [{name: name, type: string}]
//	        results: [string]
//	  - name: Counter
//	    extends: [Greeter]
//	    methods:
//	      - name: Increment
//	      - name: TryGet
//	        params: [{name: key, type: string}, {name: value, type: int, mode: out}]
//	        results: [bool]
//	    properties:
//	      - {name: Count, type: int, access: get}
//	    indexers:
//	      - {index: [int], type: string, access: getset}
//	    events:
//	      - {name: Changed, handler: "func(int)"}
//
// Types are written as Go type expressions. Predeclared types, composite
// types built from them, and names registered on the TypeRegistry are
// understood; anything else fails with ErrUnknownType.
//
// Extended sets are always built before the sets extending them. An unknown
// name fails with ErrUnknownSet and a cycle with ErrExtensionCycle.
package decl
