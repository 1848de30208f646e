package directory

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Geo holds coordinates as decimal strings, matching the wire format.
type Geo struct {
	Lat string `bun:"lat" json:"lat"`
	Lng string `bun:"lng" json:"lng"`
}

// Address is a value object embedded in Profile. It is replaced wholesale
// on update, never merged field by field.
type Address struct {
	Street  string `bun:"street" json:"street"`
	Suite   string `bun:"suite" json:"suite"`
	City    string `bun:"city" json:"city"`
	Zipcode string `bun:"zipcode" json:"zipcode"`
	Geo     Geo    `bun:"embed:geo_" json:"geo"`
}

// Company is a value object embedded in Profile.
type Company struct {
	Name        string `bun:"name" json:"name"`
	CatchPhrase string `bun:"catch_phrase" json:"catchPhrase"`
	BS          string `bun:"bs" json:"bs"`
}

// Profile is the directory record for a person. The id is assigned by the
// store on insert and never changes afterwards. Every other field is
// optional free text.
type Profile struct {
	bun.BaseModel `bun:"table:profiles,alias:prf"`
	ID            int64      `bun:"id,pk,autoincrement" json:"id"`
	Name          string     `bun:"name" json:"name"`
	Username      string     `bun:"username" json:"username"`
	Email         string     `bun:"email" json:"email"`
	Address       Address    `bun:"embed:address_" json:"address"`
	Phone         string     `bun:"phone" json:"phone"`
	Website       string     `bun:"website" json:"website"`
	Company       Company    `bun:"embed:company_" json:"company"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// Credential is the authentication record, a separate identity space from
// Profile. Created once at registration, read at login, never updated or
// deleted. Email is unique at the store level so a racing duplicate insert
// fails instead of silently creating two records.
type Credential struct {
	bun.BaseModel `bun:"table:credentials,alias:crd"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Name          string     `bun:"name,notnull" json:"name,omitempty"`
	Email         string     `bun:"email,notnull,unique" json:"email,omitempty"`
	PasswordHash  string     `bun:"password_hash,notnull" json:"-"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}
