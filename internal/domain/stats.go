package domain

// Stats is a read-only rollup over the store's current snapshot.
type Stats struct {
	AssetCount     int `json:"assetCount"`
	ViolationCount int `json:"violationCount"`
	PendingCount   int `json:"pendingCount"`
	ResolvedCount  int `json:"resolvedCount"`
	ScanCount      int `json:"scanCount"`
	ScansInWindow  int `json:"scansInWindow"`
}
