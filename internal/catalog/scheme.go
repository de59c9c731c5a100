package catalog

var (
	bPages  = []byte("pages")   // output path -> render hash
	bTitles = []byte("titles")  // sorting key + 0x00 + id -> titleBytes
	bIdxDay = []byte("idx_day") // date(8) + 0x00 + id -> {1}
	bShows  = []byte("shows")   // show id -> showBytes
	bMeta   = []byte("meta")    // metaKey -> value
)

var (
	metaRebuilt = []byte("rebuilt") // RFC 3339 time of the last Rebuild
)
