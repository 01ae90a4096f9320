package model

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/plugfox/hunchworks-server/internal/utility"
	"gorm.io/gorm"
)

type (
	HunchID      uint64
	HunchStatus  int
	PrivacyLevel int
)

const (
	StatusConfirmed HunchStatus = iota
	StatusDenied
	StatusUndetermined
)

const (
	PrivacyHidden PrivacyLevel = iota // Only visible to invited members.
	PrivacyClosed                     // Visible to everyone, only invited members can participate.
	PrivacyOpen                       // Available to any member.
)

const (
	maxTitleLength    = 100
	maxLanguageLength = 45
	maxLocationLength = 45
)

// Hunch is a claim put up for the community to confirm or deny with evidence.
type Hunch struct {
	ID HunchID `gorm:"primaryKey" hash:"x" json:"id"` // Unique identifier, assigned on first save.

	// Hunch fields
	Title       string       `gorm:"size:100;not null" hash:"x" json:"title"`
	Description string       `gorm:"not null"          hash:"x" json:"description"`
	Status      HunchStatus  `gorm:"not null"          hash:"x" json:"status"`
	Privacy     PrivacyLevel `gorm:"not null"          hash:"x" json:"privacy"`
	Language    string       `gorm:"size:45"           hash:"x" json:"language"`
	Location    string       `gorm:"size:45"           hash:"x" json:"location"`

	// Meta fields
	TimeCreated  time.Time      `gorm:"autoCreateTime" hash:"x" json:"time_created"`  // Time when the hunch was first saved.
	TimeModified time.Time      `gorm:"autoUpdateTime" hash:"x" json:"time_modified"` // Time when the hunch was last saved.
	DeletedAt    gorm.DeletedAt `gorm:"index"          json:"-"`                      // Soft delete.

	// Errors found by the last validation, never persisted.
	Errors ValidationErrors `gorm:"-" json:"errors,omitempty"`

	assignErrors ValidationErrors
}

// NewHunch returns an unsaved hunch with default values.
func NewHunch() *Hunch {
	return &Hunch{
		Status:  StatusUndetermined,
		Privacy: PrivacyHidden,
	}
}

// TableName - set the table name.
func (Hunch) TableName() string {
	return "hunches"
}

// Hash - calculate the hash of the object.
func (obj *Hunch) Hash() (string, error) {
	return utility.Hash(obj)
}

// ToParam returns the id as it appears in URLs.
func (obj *Hunch) ToParam() string {
	return obj.ID.ToString()
}

// IsNewRecord reports whether the hunch has never been saved.
func (obj *Hunch) IsNewRecord() bool {
	return obj.ID == 0
}

// IsHidden reports whether the hunch is only visible to invited members.
func (obj *Hunch) IsHidden() bool {
	return obj.Privacy == PrivacyHidden
}

// Assign applies the permitted attributes and ignores everything else.
// Values that cannot be parsed are kept as validation errors until the next Validate.
func (obj *Hunch) Assign(attrs Attributes) {
	if obj.assignErrors == nil {
		obj.assignErrors = ValidationErrors{}
	}

	for key, value := range attrs.Permitted() {
		delete(obj.assignErrors, key)

		switch key {
		case AttrTitle:
			obj.Title = value
		case AttrDescription:
			obj.Description = value
		case AttrLanguage:
			obj.Language = value
		case AttrLocation:
			obj.Location = value
		case AttrStatus:
			status, err := ParseHunchStatus(value)
			if err != nil {
				obj.assignErrors.Add(key, "is not a valid status")
				continue
			}
			obj.Status = status
		case AttrPrivacy:
			privacy, err := ParsePrivacyLevel(value)
			if err != nil {
				obj.assignErrors.Add(key, "is not a valid privacy level")
				continue
			}
			obj.Privacy = privacy
		}
	}
}

// Validate checks the hunch, stores the result in Errors and reports whether it is valid.
func (obj *Hunch) Validate() bool {
	errs := ValidationErrors{}
	for field, messages := range obj.assignErrors {
		for _, message := range messages {
			errs.Add(field, message)
		}
	}

	switch {
	case strings.TrimSpace(obj.Title) == "":
		errs.Add(AttrTitle, "can't be blank")
	case utf8.RuneCountInString(obj.Title) > maxTitleLength:
		errs.Add(AttrTitle, "is too long (maximum is 100 characters)")
	}

	if strings.TrimSpace(obj.Description) == "" {
		errs.Add(AttrDescription, "can't be blank")
	}

	if !obj.Status.Valid() {
		errs.Add(AttrStatus, "is not a valid status")
	}

	if !obj.Privacy.Valid() {
		errs.Add(AttrPrivacy, "is not a valid privacy level")
	}

	if utf8.RuneCountInString(obj.Language) > maxLanguageLength {
		errs.Add(AttrLanguage, "is too long (maximum is 45 characters)")
	}

	if utf8.RuneCountInString(obj.Location) > maxLocationLength {
		errs.Add(AttrLocation, "is too long (maximum is 45 characters)")
	}

	if errs.Any() {
		obj.Errors = errs
		return false
	}

	obj.Errors = nil

	return true
}

// ToString - get the hunch ID.
func (id HunchID) ToString() string {
	return strconv.FormatUint(uint64(id), 10)
}

// ParseHunchID parses a decimal id from a URL. Ids must fit the signed
// 64 bit primary key column.
func ParseHunchID(s string) (HunchID, error) {
	id, err := strconv.ParseUint(s, 10, 63)
	if err != nil {
		return 0, err
	}
	return HunchID(id), nil
}

// Clone returns a copy of the persisted fields, without validation state.
func (obj *Hunch) Clone() *Hunch {
	clone := *obj
	clone.Errors = nil
	clone.assignErrors = nil
	return &clone
}
