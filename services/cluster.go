package services

import (
	"fmt"
	"sort"

	"offer-enrichment/config"
	"offer-enrichment/ml"
	"offer-enrichment/models"
	"offer-enrichment/utils"
)

// NoiseClusterName names the offers a density partition left unassigned.
const NoiseClusterName = "Hors cluster"

// secondaryShare is the percentage of a cluster the runner-up domain needs
// to appear in the cluster name.
const secondaryShare = 30

// ClusterEngine partitions offers with every candidate algorithm, scores
// them, and keeps the one the operator selected.
type ClusterEngine struct {
	cfg        *config.Config
	categories []string
	logger     *utils.Logger
}

// NewClusterEngine creates a ClusterEngine. categories is the closed domain
// tag set used for the one-hot block.
func NewClusterEngine(cfg *config.Config, categories []string, logger *utils.Logger) *ClusterEngine {
	return &ClusterEngine{cfg: cfg, categories: categories, logger: logger}
}

// Features vectorizes texte_complet and, when enabled, appends the one-hot
// domain columns.
func (e *ClusterEngine) Features(offers []*models.CleanOffer) ([][]float64, error) {
	docs := make([]string, len(offers))
	domains := make([]string, len(offers))
	for i, o := range offers {
		docs[i] = o.TexteComplet
		domains[i] = o.DomaineMetier
	}

	vec := ml.NewVectorizer(vectorizerOptions(e.cfg.ClusterVectors))
	x, err := vec.FitTransform(docs)
	if err != nil {
		return nil, fmt.Errorf("cluster: vectorize: %w", err)
	}
	e.logger.Debug("[cluster] Vocabulary: %d terms", len(vec.Vocabulary()))

	if e.cfg.DomainFeature {
		x = ml.HStack(x, ml.OneHot(domains, e.categories))
	}
	return x, nil
}

// Run assigns cluster_id and cluster_nom to every offer.
func (e *ClusterEngine) Run(offers []*models.CleanOffer) ([]*models.EnrichedOffer, *models.ClusterReport, error) {
	x, err := e.Features(offers)
	if err != nil {
		return nil, nil, err
	}
	dist := ml.PairwiseDistances(x)

	k := e.cfg.ClusterCount
	if k > len(offers) {
		e.logger.Warn("[cluster] CLUSTER_COUNT=%d exceeds %d offers, capping", k, len(offers))
		k = len(offers)
	}

	partitions := make(map[string][]int, 3)
	report := &models.ClusterReport{Selected: e.cfg.ClusterAlgorithm, K: k}

	km, err := ml.KMeans(x, ml.KMeansOptions{K: k, Seed: e.cfg.Seed})
	if err != nil {
		return nil, nil, fmt.Errorf("cluster: kmeans: %w", err)
	}
	partitions[config.ClusterKMeans] = km.Labels

	agg, err := ml.Agglomerative(dist, k)
	if err != nil {
		return nil, nil, fmt.Errorf("cluster: agglomerative: %w", err)
	}
	partitions[config.ClusterAgglomerative] = agg

	db, err := ml.DBSCAN(dist, e.cfg.DBSCANEps, e.cfg.DBSCANMinSamples)
	if err != nil {
		return nil, nil, fmt.Errorf("cluster: dbscan: %w", err)
	}
	partitions[config.ClusterDBSCAN] = db

	for _, name := range []string{config.ClusterKMeans, config.ClusterAgglomerative, config.ClusterDBSCAN} {
		score := scorePartition(name, dist, partitions[name])
		report.Candidates = append(report.Candidates, score)
		e.logger.Info("[cluster] %-13s silhouette=%.3f clusters=%d noise=%d",
			name, score.Silhouette, score.Clusters, score.Noise)
	}

	labels, ok := partitions[e.cfg.ClusterAlgorithm]
	if !ok {
		return nil, nil, fmt.Errorf("cluster: unknown algorithm %q", e.cfg.ClusterAlgorithm)
	}

	domains := make([]string, len(offers))
	for i, o := range offers {
		domains[i] = o.DomaineMetier
	}
	report.Names = NameClusters(labels, domains)
	report.Sizes = make(map[int]int)
	for _, l := range labels {
		report.Sizes[l]++
	}
	for id := range report.Sizes {
		report.IDs = append(report.IDs, id)
	}
	sort.Ints(report.IDs)

	out := make([]*models.EnrichedOffer, len(offers))
	for i, o := range offers {
		eo := models.NewEnrichedOffer(o)
		eo.ClusterID = labels[i]
		eo.ClusterNom = report.Names[labels[i]]
		out[i] = eo
	}

	for _, id := range report.IDs {
		e.logger.Info("[cluster] #%d %-35s %d offers", id, report.Names[id], report.Sizes[id])
	}
	return out, report, nil
}

// scorePartition computes the silhouette of one candidate. A density
// partition with fewer than two real clusters gets the worst score.
func scorePartition(name string, dist [][]float64, labels []int) models.AlgorithmScore {
	clusters, noise := ml.CountClusters(labels)
	score := models.AlgorithmScore{Algorithm: name, Clusters: clusters, Noise: noise, Silhouette: ml.WorstSilhouette}
	if name == config.ClusterDBSCAN && clusters < 2 {
		return score
	}
	score.Silhouette, _ = ml.Silhouette(dist, labels)
	return score
}

// NameClusters names every cluster after its dominant domain. The runner-up
// is appended as "<primary>/<secondary>" when it holds at least 30% of the
// members. Equal counts keep the order the domains were first seen in.
func NameClusters(labels []int, domains []string) map[int]string {
	type tally struct {
		domain string
		count  int
	}
	byCluster := make(map[int][]tally)
	sizes := make(map[int]int)
	for i, l := range labels {
		sizes[l]++
		ts := byCluster[l]
		found := false
		for j := range ts {
			if ts[j].domain == domains[i] {
				ts[j].count++
				found = true
				break
			}
		}
		if !found {
			ts = append(ts, tally{domain: domains[i], count: 1})
		}
		byCluster[l] = ts
	}

	names := make(map[int]string, len(byCluster))
	for id, ts := range byCluster {
		if id == ml.Noise {
			names[id] = NoiseClusterName
			continue
		}
		sort.SliceStable(ts, func(a, b int) bool { return ts[a].count > ts[b].count })
		name := ts[0].domain
		if len(ts) > 1 && ts[1].count*100 >= secondaryShare*sizes[id] {
			name += "/" + ts[1].domain
		}
		names[id] = name
	}
	return names
}

func vectorizerOptions(c config.VectorizerConfig) ml.VectorizerOptions {
	return ml.VectorizerOptions{MaxFeatures: c.MaxFeatures, MinDF: c.MinDF, MaxDF: c.MaxDF}
}
