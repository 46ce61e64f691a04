package services

import (
	"strings"

	"offer-enrichment/models"
	"offer-enrichment/utils"
)

// DomainAutre is assigned when no rule matches.
const DomainAutre = "Autre"

// DefaultDomainRules is the ordered keyword table. The first rule whose
// keyword occurs in the lowercased title wins, so order is part of the
// behaviour: "magasinier" is Logistique before it can be Commerce.
var DefaultDomainRules = []models.DomainRule{
	{Category: "Restauration", Keywords: []string{
		"cuisinier", "serveur", "restauration", "hôtel", "hotel", "chef de rang", "restaurant",
	}},
	{Category: "Logistique", Keywords: []string{
		"logistique", "chauffeur", "livreur", "transport", "pl de nuit", "magasinier", "cariste",
	}},
	{Category: "BTP", Keywords: []string{
		"conducteur de travaux", "chantier", "géotechnique", "geotechnique", "ingénieur travaux",
		"travaux publics", "bâtiment", "batiment", "scierie",
	}},
	{Category: "Énergie / Technique", Keywords: []string{
		"électricien", "electricien", "électricité", "electricite", "électrique", "electric",
		"énergie", "energie", "technicien", "maintenance",
	}},
	{Category: "Qualité / QHSE", Keywords: []string{
		"qhse", "qse", "qualité", "qualite", "sécurité", "securite", "hse",
	}},
	{Category: "Finance / Assurance", Keywords: []string{
		"actuaire", "risques", "assurances", "assurance", "comptable", "comptabilité", "audit",
		"contrôle de gestion", "controle de gestion",
	}},
	{Category: "Informatique", Keywords: []string{
		"développeur", "developpeur", "développeuse", "developer",
		"informatique", "data", "si ", "système d'information", "systèmes d'information",
		"logiciel", "software", "it", "tech", "numérique", "digital", "progiciel",
	}},
	{Category: "Commerce", Keywords: []string{
		"commercial", "vente", "vendeur", "magasin", "magasinier",
		"conseiller de vente", "conseiller client", "relation client",
		"directeur de magasin", "responsable magasin",
	}},
	{Category: "Administration", Keywords: []string{
		"assistant", "assistante", "administratif", "administrative",
		"gestionnaire", "secrétaire", "back office",
	}},
	{Category: "Management", Keywords: []string{
		"manager", "responsable", "directeur", "directrice",
		"chef de projet", "chef de département", "chef d'équipe", "chef d equipe",
		"responsable agence", "responsable des projets",
	}},
}

// DomainClassifier tags offers with a business domain from their title.
type DomainClassifier struct {
	logger *utils.Logger
	pool   *utils.WorkerPool
	rules  []models.DomainRule
}

// NewDomainClassifier uses rules, or DefaultDomainRules when rules is empty.
// Keywords are lowercased once here.
func NewDomainClassifier(rules []models.DomainRule, logger *utils.Logger, pool *utils.WorkerPool) *DomainClassifier {
	if len(rules) == 0 {
		rules = DefaultDomainRules
	}
	lowered := make([]models.DomainRule, len(rules))
	for i, r := range rules {
		kws := make([]string, len(r.Keywords))
		for j, k := range r.Keywords {
			kws[j] = strings.ToLower(k)
		}
		lowered[i] = models.DomainRule{Category: r.Category, Keywords: kws}
	}
	return &DomainClassifier{logger: logger, pool: pool, rules: lowered}
}

// Classify returns the category of the first rule with a keyword contained
// in the title, or DomainAutre.
func (d *DomainClassifier) Classify(title string) string {
	t := strings.ToLower(title)
	for _, r := range d.rules {
		for _, k := range r.Keywords {
			if strings.Contains(t, k) {
				return r.Category
			}
		}
	}
	return DomainAutre
}

// Categories returns the closed tag set in rule order, DomainAutre last.
func (d *DomainClassifier) Categories() []string {
	seen := make(map[string]struct{}, len(d.rules)+1)
	out := make([]string, 0, len(d.rules)+1)
	for _, r := range d.rules {
		if _, dup := seen[r.Category]; dup {
			continue
		}
		seen[r.Category] = struct{}{}
		out = append(out, r.Category)
	}
	if _, ok := seen[DomainAutre]; !ok {
		out = append(out, DomainAutre)
	}
	return out
}

// Apply returns copies of offers with Domaine_metier and texte_complet set.
func (d *DomainClassifier) Apply(offers []*models.CleanOffer) []*models.CleanOffer {
	out := make([]*models.CleanOffer, len(offers))
	d.pool.Each(len(offers), func(i int) {
		o := *offers[i]
		o.DomaineMetier = d.Classify(o.Titre)
		o.TexteComplet = texteComplet(&o)
		out[i] = &o
	})

	counts := make(map[string]int)
	for _, o := range out {
		counts[o.DomaineMetier]++
	}
	for _, cat := range d.Categories() {
		if n := counts[cat]; n > 0 {
			d.logger.Debug("[domain] %-22s %d", cat, n)
		}
	}
	d.logger.Info("[domain] Tagged %d offers, %d fell back to %q", len(out), counts[DomainAutre], DomainAutre)
	return out
}

// texteComplet joins the fields used by the text models.
func texteComplet(o *models.CleanOffer) string {
	return strings.Join(strings.Fields(strings.Join([]string{
		o.Titre, o.Entreprise, o.VillePropre, o.ContratPropre, o.DomaineMetier,
	}, " ")), " ")
}
