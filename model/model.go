// Package model provides the base types embedded by generated entities.
//
// Generated entities embed one of Object, StandardObject or CustomObject,
// depending on which common fields the object carries. The common fields
// are declared here once instead of in every generated file.
//
//	type Account struct {
//	    model.StandardObject
//
//	    Industry string `force:"Industry" json:"industry,omitempty"`
//	}
package model

import "time"

// Entity is implemented by generated entities.
type Entity interface {
	TableName() string
}

// Object holds the field every object carries.
type Object struct {
	Id string `force:"Id,id" json:"id,omitempty"`
}

// ID returns the record id.
func (o Object) ID() string { return o.Id }

// IsNew reports if the record has not been stored yet.
func (o Object) IsNew() bool { return o.Id == "" }

// StandardObject holds the fields of a full standard object.
type StandardObject struct {
	Object

	Name             string    `force:"Name" json:"name,omitempty"`
	OwnerId          string    `force:"OwnerId" json:"ownerId,omitempty"`
	CreatedDate      time.Time `force:"CreatedDate" json:"createdDate,omitempty"`
	LastModifiedDate time.Time `force:"LastModifiedDate,version" json:"lastModifiedDate,omitempty"`
	SystemModstamp   time.Time `force:"SystemModstamp" json:"systemModstamp,omitempty"`
}

// Version returns the optimistic locking version of the record.
func (o StandardObject) Version() time.Time { return o.LastModifiedDate }

// CustomObject holds the fields of a custom object.
type CustomObject struct {
	StandardObject

	IsDeleted bool `force:"IsDeleted" json:"isDeleted,omitempty"`
}
