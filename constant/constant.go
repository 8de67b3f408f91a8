package constant

type ReconcileKind string

const (
	// ReconcileDanglingRecord: media asset already removed, the database
	// row delete failed and must be replayed.
	ReconcileDanglingRecord ReconcileKind = "dangling_record"
	// ReconcileOrphanAsset: database row was never written, the uploaded
	// asset must be removed.
	ReconcileOrphanAsset ReconcileKind = "orphan_asset"
)

type Environment string

const (
	EnvironmentProduction Environment = "production"
	EnvironmentStaging    Environment = "staging"
	EnvironmentDevelop    Environment = "develop"
)

func (e Environment) String() string {
	return string(e)
}
