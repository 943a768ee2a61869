package constants

const (
	LeaseShares       = "lease_shares"
	CreateRoom        = "create_room"
	UpdateLeaseStatus = "update_lease_status"
	ReclaimShares     = "reclaim_shares"
)
