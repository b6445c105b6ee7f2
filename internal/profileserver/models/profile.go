package models

import "time"

// Profile is the mutable, user-owned half of an identity. Username and email
// live in the identity authority and are never duplicated here; they are
// joined in at read time.
type Profile struct {
	UserID      int64             `bson:"user_id"`
	Bio         string            `bson:"bio"`
	AvatarURL   string            `bson:"avatar_url"`
	Address     string            `bson:"address"`
	SocialLinks map[string]string `bson:"social_links"`
	CreatedAt   time.Time         `bson:"created_at"`
	UpdatedAt   time.Time         `bson:"updated_at"`
}

// Update carries the whitelisted mutable fields. Nil pointers leave the
// stored value untouched.
type Update struct {
	Bio         *string            `bson:"bio,omitempty"`
	AvatarURL   *string            `bson:"avatar_url,omitempty"`
	Address     *string            `bson:"address,omitempty"`
	SocialLinks *map[string]string `bson:"social_links,omitempty"`
}
