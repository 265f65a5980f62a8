package model

import "time"

const (
	// DefaultPhotoURL is used when a nominee is saved without a photo
	DefaultPhotoURL = "https://placehold.co/128x128.png"

	// SnapshotCacheKey holds the JSON-encoded Snapshot
	SnapshotCacheKey = "ballot:snapshot"

	DefaultSnapshotTTL = 5 * time.Minute

	// NomineeIDSuffixLen is the length of the random suffix on generated nominee ids
	NomineeIDSuffixLen = 5
)
