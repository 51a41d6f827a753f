package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// User is a registered account. PasswordHash holds a bcrypt digest and is
// never serialized to JSON.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password" json:"-"`
}

// HexID returns the user's identifier as a hex string, the form embedded in
// token subjects and stored on owned records.
func (u *User) HexID() string {
	return u.ID.Hex()
}
