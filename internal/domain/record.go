package domain

import "time"

// Record — сохранённая анкета. Неизменяемая после записи.
type Record struct {
	ID          string    `bson:"_id,omitempty" json:"-"`
	FullName    string    `bson:"full_name" json:"full_name"`
	PhoneNumber string    `bson:"phone_number" json:"phone_number"`
	CreatedAt   time.Time `bson:"created_at,omitempty" json:"-"`
}
