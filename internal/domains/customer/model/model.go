package model

import (
	"time"

	"yujin/shared/model"
)

const (
	TableName  = "customers"
	EntityName = "customer"

	FieldID            = "id"
	FieldPhone         = "phone"
	FieldName          = "name"
	FieldEmail         = "email"
	FieldContactCount  = "contact_count"
	FieldLastContactAt = "last_contact_at"
	FieldLastChannel   = "last_channel"
)

// Customer is the phone-keyed identity record. Phone is stored in its
// normalized +66 form and acts as the natural lookup key.
type Customer struct {
	ID            string    `db:"id"`
	Phone         string    `db:"phone"`
	Name          string    `db:"name"`
	Email         string    `db:"email"`
	ContactCount  int       `db:"contact_count"`
	LastContactAt time.Time `db:"last_contact_at"`
	LastChannel   string    `db:"last_channel"`
	Credential    string    `db:"credential"`
	model.Metadata
}

const (
	ContactTableName  = "customer_contacts"
	ContactEntityName = "customer_contact"

	ContactFieldID         = "id"
	ContactFieldCustomerID = "customer_id"
)

// Contact is one row of a customer's contact history.
type Contact struct {
	ID         string    `db:"id"`
	CustomerID string    `db:"customer_id"`
	Channel    string    `db:"channel"`
	Detail     string    `db:"detail"`
	CreatedAt  time.Time `db:"created_at"`
}

const (
	ChannelBooking      = "booking"
	ChannelQuickContact = "quick_contact"
)
