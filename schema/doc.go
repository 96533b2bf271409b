// Package schema describes the catalog a generator run works on.
//
// A catalog is a flat list of objects, each holding an ordered list of typed
// fields. Reference fields point at other objects by name:
//
//	Contact
//	├── Id          (id)
//	├── LastName    (string)
//	└── AccountId   (reference -> Account, relationship "Account")
//
// Objects are built wholesale by a schema source (see compiler/load) once per
// run. Field filters may replace an object's field list and rename individual
// fields while the run is filtering; after an object is handed to a template
// it is treated as read-only.
//
// The types carry json, yaml and msgpack tags so a described catalog can be
// stored as a snapshot and replayed later.
package schema
