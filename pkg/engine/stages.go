package engine

// Stage identifies one of the four slots of an Engine.
type Stage int

const (
	// StageDataSource is the data source slot.
	StageDataSource Stage = iota + 1
	// StagePreparator is the preparator slot.
	StagePreparator
	// StageAlgorithm is the named algorithm registry.
	StageAlgorithm
	// StageServing is the serving slot.
	StageServing
)

func (s Stage) String() string {
	switch s {
	case StageDataSource:
		return "datasource"
	case StagePreparator:
		return "preparator"
	case StageAlgorithm:
		return "algorithm"
	case StageServing:
		return "serving"
	default:
		return "unknown"
	}
}
