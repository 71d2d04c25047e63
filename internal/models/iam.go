package models

import "time"

// AccessKeyInfo represents IAM access key metadata with last-used details
type AccessKeyInfo struct {
	UserName        string     // Owning IAM user name
	AccessKeyID     string     // Access key ID
	Status          string     // "Active" or "Inactive"
	CreateDate      *time.Time // When the key was created
	AgeDays         int        // Days since the key was created
	LastUsed        *time.Time // When the key was last used, nil if never
	LastUsedService string     // Service the key was last used with
	LastUsedRegion  string     // Region the key was last used in
}
