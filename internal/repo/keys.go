package repo

// Storage keys. These are wire-stable: changing one orphans the data
// persisted under it.
const (
	keyProfile   = "senderProfile"
	keySuppliers = "suppliers"
	keyProducts  = "products"
	keySessions  = "sessions"
	keyCompany   = "companyLink"
	keySnapshots = "snapshots"
)
