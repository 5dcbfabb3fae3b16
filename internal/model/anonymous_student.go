package model

// AnonymousStudent is a nickname-only participant created when someone scans
// a code without logging in. TotalPoints is only ever changed through an
// atomic increment, never read-modify-write.
// swagger:model AnonymousStudent
type AnonymousStudent struct {
	UUIDBase
	DisplayName string `gorm:"size:100;not null" json:"displayName"`
	TotalPoints int    `gorm:"default:0" json:"totalPoints"`
}

func (AnonymousStudent) TableName() string {
	return "anonymous_students"
}
