package models

import "time"

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type User struct {
	ID             uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name           string    `json:"name"`
	Email          string    `gorm:"uniqueIndex;size:320;not null" json:"email"`
	HashedPassword string    `gorm:"not null" json:"-"`
	Role           Role      `gorm:"size:16;not null;default:user" json:"role"`
	Tier           Tier      `gorm:"size:1;not null;default:5" json:"tier"`
	LastSignedIn   time.Time `json:"last_signed_in"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Session backs issued access tokens; deleting a user revokes their
// sessions via the FK cascade. Audit rows never cascade.
type Session struct {
	JTI       string     `gorm:"primaryKey;size:64" json:"jti"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	User      *User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	RevokedAt *time.Time `json:"revoked_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

type Resource struct {
	ID           uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Title        string     `gorm:"size:255;not null" json:"title"`
	Description  string     `json:"description"`
	URL          string     `gorm:"size:2048;not null" json:"url"`
	Category     string     `gorm:"size:64;not null" json:"category"`
	Icon         string     `gorm:"size:64" json:"icon"`
	Labels       StringList `gorm:"type:text" json:"labels"`
	RequiredTier *Tier      `gorm:"size:1" json:"required_tier,omitempty"`
	IsExternal   bool       `gorm:"not null;default:true" json:"is_external"`
	IsFavorite   bool       `gorm:"not null;default:false" json:"is_favorite"`
	SortOrder    int        `gorm:"not null;default:0" json:"sort_order"`
	CreatedBy    *uint      `json:"created_by,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type Category struct {
	ID           string    `gorm:"primaryKey;size:64" json:"id"`
	Name         string    `gorm:"size:128;not null" json:"name"`
	Icon         string    `gorm:"size:64" json:"icon"`
	Color        string    `gorm:"size:32" json:"color"`
	SortOrder    int       `gorm:"not null;default:0" json:"sort_order"`
	RequiredTier *Tier     `gorm:"size:1" json:"required_tier,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Label struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"uniqueIndex;size:128;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type Action string

const (
	ActionView   Action = "view"
	ActionCreate Action = "create"
	ActionEdit   Action = "edit"
	ActionDelete Action = "delete"
)

func (a Action) Valid() bool {
	switch a {
	case ActionView, ActionCreate, ActionEdit, ActionDelete:
		return true
	}
	return false
}

// AccessLog is append-only. UserName/ResourceTitle/ResourceURL are
// snapshots taken at record time so entries stay meaningful after the
// referenced user or resource changes or is deleted.
type AccessLog struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID        *uint     `json:"user_id,omitempty"`
	UserName      string    `gorm:"size:255" json:"user_name"`
	ResourceID    *uint     `json:"resource_id,omitempty"`
	ResourceTitle string    `gorm:"size:255" json:"resource_title"`
	ResourceURL   string    `gorm:"size:2048" json:"resource_url"`
	Action        Action    `gorm:"size:16;not null" json:"action"`
	Timestamp     time.Time `gorm:"index;not null" json:"timestamp"`
}

type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationExpired  InvitationStatus = "expired"
)

// Invitation authorizes exactly one registration at a pre-assigned
// tier. Expiry is evaluated lazily from ExpiresAt; the "expired"
// status value is never written by a background job.
type Invitation struct {
	ID            uint             `gorm:"primaryKey;autoIncrement" json:"id"`
	Email         string           `gorm:"size:320;not null" json:"email"`
	InitialTier   Tier             `gorm:"size:1;not null;default:5" json:"initial_tier"`
	Token         string           `gorm:"uniqueIndex;size:64;not null" json:"token"`
	Status        InvitationStatus `gorm:"size:16;not null;default:pending" json:"status"`
	InvitedBy     uint             `gorm:"not null" json:"invited_by"`
	InvitedByName string           `gorm:"size:255" json:"invited_by_name"`
	AcceptedBy    *uint            `json:"accepted_by,omitempty"`
	Note          string           `json:"note"`
	ExpiresAt     time.Time        `gorm:"not null" json:"expires_at"`
	CreatedAt     time.Time        `json:"created_at"`
	AcceptedAt    *time.Time       `json:"accepted_at,omitempty"`
}

type AllowedDomain struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Domain      string    `gorm:"uniqueIndex;size:255;not null" json:"domain"`
	Description string    `json:"description"`
	IsActive    bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedBy   *uint     `json:"created_by,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Setting struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Key       string    `gorm:"uniqueIndex;size:128;not null" json:"key"`
	Value     string    `json:"value"`
	UpdatedBy *uint     `json:"updated_by,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// All lists every entity for AutoMigrate.
func All() []any {
	return []any{
		&User{}, &Session{}, &Resource{}, &Category{}, &Label{},
		&AccessLog{}, &Invitation{}, &AllowedDomain{}, &Setting{},
	}
}
