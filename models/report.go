package models

// AlgorithmScore is the silhouette of one candidate partition.
type AlgorithmScore struct {
	Algorithm  string
	Silhouette float64
	Clusters   int
	Noise      int
}

// ClusterReport describes the cluster stage outcome.
type ClusterReport struct {
	Candidates []AlgorithmScore
	Selected   string
	K          int
	// IDs lists cluster ids in ascending order; Names and Sizes are keyed by id.
	IDs   []int
	Names map[int]string
	Sizes map[int]int
}

// ClassMetrics holds the evaluation of one label value on the test split.
type ClassMetrics struct {
	Label     int
	Precision float64
	Recall    float64
	F1        float64
	Support   int
}

// DemandReport is the evaluation artifact of the demand classifier.
type DemandReport struct {
	Policy    string
	Threshold float64
	Positives int
	TrainSize int
	TestSize  int
	Accuracy  float64
	PerClass  []ClassMetrics
}

// RunReport summarises a whole pipeline run.
type RunReport struct {
	RunID    string
	Offers   int
	Clusters *ClusterReport
	Demand   *DemandReport
}

// CategoryCount is one bar of a distribution.
type CategoryCount struct {
	Name  string
	Count int
}

// TitleStat aggregates the offers sharing one title.
type TitleStat struct {
	Titre          string
	Offers         int
	MeanPred       float64
	MeanPopularity float64
	ModeSalary     SalaryLevel
}

// InsightReport holds the computed analytics over the enriched dataset.
type InsightReport struct {
	TotalOffers     int
	UniqueCities    int
	UniqueContracts int
	HighDemand      int
	Domains         []CategoryCount
	SalaryLevels    []CategoryCount
	TopTitles       []TitleStat
	Run             *RunReport
}
