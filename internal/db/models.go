package db

import (
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password" json:"-"`
	ShoppingCart []any              `bson:"shoppingCart" json:"shoppingCart"`
}

// Claims is the payload embedded in issued tokens: the user's name,
// email and identifier copied from the record at issuance time.
type Claims struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	UserID string `json:"id"`
	jwt.RegisteredClaims
}
