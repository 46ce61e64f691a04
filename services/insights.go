package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"

	"offer-enrichment/models"
	"offer-enrichment/utils"
)

const topTitles = 10

type InsightService struct {
	logger *utils.Logger
}

func NewInsightService(logger *utils.Logger) *InsightService {
	return &InsightService{logger: logger}
}

func (s *InsightService) Generate(offers []*models.EnrichedOffer, run *models.RunReport) *models.InsightReport {
	report := &models.InsightReport{Run: run}
	if len(offers) == 0 {
		return report
	}
	report.TotalOffers = len(offers)

	cities := make(map[string]struct{})
	contracts := make(map[string]struct{})
	domainCounts := make(map[string]int)
	var domainOrder []string
	levelCounts := make(map[models.SalaryLevel]int)

	type titleAgg struct {
		offers int
		pred   int
		pop    float64
		levels map[models.SalaryLevel]int
	}
	titles := make(map[string]*titleAgg)
	var titleOrder []string

	for _, o := range offers {
		cities[o.VillePropre] = struct{}{}
		contracts[o.ContratPropre] = struct{}{}
		if domainCounts[o.DomaineMetier] == 0 {
			domainOrder = append(domainOrder, o.DomaineMetier)
		}
		domainCounts[o.DomaineMetier]++
		levelCounts[o.NiveauSalaire]++
		report.HighDemand += o.PredTresDemande

		agg, ok := titles[o.Titre]
		if !ok {
			agg = &titleAgg{levels: make(map[models.SalaryLevel]int)}
			titles[o.Titre] = agg
			titleOrder = append(titleOrder, o.Titre)
		}
		agg.offers++
		agg.pred += o.PredTresDemande
		agg.pop += o.ScorePopularite
		agg.levels[o.NiveauSalaire]++
	}
	report.UniqueCities = len(cities)
	report.UniqueContracts = len(contracts)

	for _, d := range domainOrder {
		report.Domains = append(report.Domains, models.CategoryCount{Name: d, Count: domainCounts[d]})
	}
	sort.SliceStable(report.Domains, func(i, j int) bool {
		return report.Domains[i].Count > report.Domains[j].Count
	})

	for _, l := range models.SalaryLevels() {
		report.SalaryLevels = append(report.SalaryLevels, models.CategoryCount{Name: l.String(), Count: levelCounts[l]})
	}

	for _, t := range titleOrder {
		agg := titles[t]
		stat := models.TitleStat{
			Titre:          t,
			Offers:         agg.offers,
			MeanPred:       round2(float64(agg.pred) / float64(agg.offers)),
			MeanPopularity: round2(agg.pop / float64(agg.offers)),
		}
		// Most frequent level; ties go to the lower level.
		best := 0
		for _, l := range models.SalaryLevels() {
			if n := agg.levels[l]; n > best {
				best, stat.ModeSalary = n, l
			}
		}
		report.TopTitles = append(report.TopTitles, stat)
	}
	sort.SliceStable(report.TopTitles, func(i, j int) bool {
		return report.TopTitles[i].Offers > report.TopTitles[j].Offers
	})
	if len(report.TopTitles) > topTitles {
		report.TopTitles = report.TopTitles[:topTitles]
	}

	return report
}

func (s *InsightService) Print(r *models.InsightReport) {
	sep := strings.Repeat("═", 64)
	thin := strings.Repeat("─", 64)

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  📊 OFFER ENRICHMENT REPORT\033[0m\n")
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	// Overview
	fmt.Printf("\033[1;33m  Overview\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if r.Run != nil {
		fmt.Printf("  Run id            : %s\n", r.Run.RunID)
	}
	fmt.Printf("  Offers enriched   : \033[1m%s\033[0m\n", humanize.Comma(int64(r.TotalOffers)))
	fmt.Printf("  Unique cities     : \033[1m%s\033[0m\n", humanize.Comma(int64(r.UniqueCities)))
	fmt.Printf("  Unique contracts  : \033[1m%s\033[0m\n", humanize.Comma(int64(r.UniqueContracts)))
	fmt.Printf("  In-demand (pred.) : \033[1m%s\033[0m\n", humanize.Comma(int64(r.HighDemand)))
	fmt.Println()

	if r.TotalOffers == 0 {
		fmt.Printf("  No offers in this run\n")
		fmt.Printf("\n\033[1;35m%s\033[0m\n\n", sep)
		return
	}

	printBars("Domains", r.Domains, thin)
	printBars("Salary levels", r.SalaryLevels, thin)

	if r.Run != nil && r.Run.Clusters != nil {
		c := r.Run.Clusters
		fmt.Printf("\033[1;33m  Clustering (selected: %s, K=%d)\033[0m\n", c.Selected, c.K)
		fmt.Printf("  %s\n", thin)
		for _, cand := range c.Candidates {
			marker := " "
			if cand.Algorithm == c.Selected {
				marker = "*"
			}
			fmt.Printf("  %s %-14s silhouette \033[1;32m%6.3f\033[0m  clusters %d  noise %d\n",
				marker, cand.Algorithm, cand.Silhouette, cand.Clusters, cand.Noise)
		}
		for _, id := range c.IDs {
			fmt.Printf("    #%-3d %-36s %s\n", id, truncate(c.Names[id], 36), humanize.Comma(int64(c.Sizes[id])))
		}
		fmt.Println()
	}

	if r.Run != nil && r.Run.Demand != nil {
		d := r.Run.Demand
		fmt.Printf("\033[1;33m  Demand classifier (%s)\033[0m\n", d.Policy)
		fmt.Printf("  %s\n", thin)
		fmt.Printf("  Threshold %.1f | labelled in-demand %s | train %d / test %d\n",
			d.Threshold, humanize.Comma(int64(d.Positives)), d.TrainSize, d.TestSize)
		fmt.Printf("  Accuracy : \033[1;32m%.3f\033[0m\n", d.Accuracy)
		fmt.Printf("  %-6s %9s %7s %7s %8s\n", "label", "precision", "recall", "f1", "support")
		for _, m := range d.PerClass {
			fmt.Printf("  %-6d %9.2f %7.2f %7.2f %8d\n", m.Label, m.Precision, m.Recall, m.F1, m.Support)
		}
		fmt.Println()
	}

	fmt.Printf("\033[1;33m  Top %d titles\033[0m\n", topTitles)
	fmt.Printf("  %s\n", thin)
	for i, t := range r.TopTitles {
		fmt.Printf("  \033[1m%2d.\033[0m %-34s %4d offers  pop %5.1f  pred %.2f  %s\n",
			i+1, truncate(t.Titre, 34), t.Offers, t.MeanPopularity, t.MeanPred, t.ModeSalary)
	}

	fmt.Printf("\n\033[1;35m%s\033[0m\n\n", sep)
}

func printBars(title string, counts []models.CategoryCount, thin string) {
	fmt.Printf("\033[1;33m  %s\033[0m\n", title)
	fmt.Printf("  %s\n", thin)
	total := 0
	for _, c := range counts {
		total += c.Count
	}
	for _, c := range counts {
		width := 0
		if total > 0 {
			width = c.Count * 30 / total
		}
		fmt.Printf("  %-24s %s (%s)\n", truncate(c.Name, 22), strings.Repeat("█", width), humanize.Comma(int64(c.Count)))
	}
	fmt.Println()
}

func round2(f float64) float64 {
	return float64(int(f*100+0.5)) / 100
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
