package localstore

// Fixed logical keys on the persistence surface
const (
	keyProfile      = "userProfile"
	keyToken        = "offlineToken"
	keyRoster       = "allUsers"
	keyRoundBuffer  = "tempRoundData"
	keyArchive      = "gameHistory"
	keyLastUpload   = "lastUploadDate"
	keyUserMetadata = "userMetadata"
)
