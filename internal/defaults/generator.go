// Package defaults produces plausible placeholder values for grant
// application fields from a free-text business description. The generator is
// a pure producer of substitutes: it never reads extracted values and never
// decides which of its values are actually used. That is the merge stage's
// job.
package defaults

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/inostartas/grant-cli/internal/model"
)

// Domain fixes the classification-dependent values for one business
// domain.
type Domain struct {
	Keywords        []string
	RDPriority      string
	ProjectType     string
	ProjectSubtopic string
	ResearchArea    string
	CESEClass       string
	ProjectKeywords string
}

// Domains is checked in priority order; the first bucket with a keyword hit
// wins. The trailing ICT bucket has no keywords and acts as the fallback.
var Domains = []Domain{
	{
		Keywords:        []string{"health", "medical", "biotechnology"},
		RDPriority:      "Health technologies",
		ProjectType:     "Health technologies and biotechnologies",
		ResearchArea:    "Medical Sciences",
		CESEClass:       "72.11",
		ProjectKeywords: "biotechnology, health technologies, medical devices, diagnostics",
	},
	{
		Keywords:        []string{"ai", "artificial intelligence", "machine learning"},
		RDPriority:      "Information and communication technologies",
		ProjectType:     "Information and communication technologies",
		ProjectSubtopic: "Artificial intelligence, big and distributed data",
		ResearchArea:    "Computer Sciences",
		CESEClass:       "62.01",
		ProjectKeywords: "artificial intelligence, machine learning, data analytics, IoT",
	},
	{
		Keywords:        []string{"energy", "renewable", "manufacturing"},
		RDPriority:      "Production processes",
		ProjectType:     "New production processes, materials and technologies",
		ProjectSubtopic: "Energy efficiency, smartness",
		ResearchArea:    "Engineering Sciences",
		CESEClass:       "35.11",
		ProjectKeywords: "renewable energy, energy efficiency, smart systems",
	},
	{
		// Generic ICT fallback.
		RDPriority:      "Information and communication technologies",
		ProjectType:     "Information and communication technologies",
		ResearchArea:    "Computer Sciences",
		CESEClass:       "62.01",
		ProjectKeywords: "innovation, technology, digital solutions",
	},
}

var companyNames = []string{
	"Baltic Innovation Technologies UAB",
	"TechnoSolutions Baltic OÜ",
	"Northern R&D Solutions AS",
	"Digital Innovation Hub UAB",
	"Advanced Technology Systems AS",
}

var managerNames = []string{
	"Dr. Vytautas Kazlauskas",
	"Dr. Andrius Petraitis",
	"Dr. Rasa Jankauskaitė",
	"Dr. Mindaugas Balčiūnas",
	"Dr. Živilė Adamonienė",
}

// riskStages fixes the four-stage risk assessment table.
var riskStages = [4][4]string{
	{
		"Concept formulation and feasibility validation",
		"Market acceptance uncertainty and technical feasibility risks",
		"User needs validation and technical proof of concept",
		"Extensive market research and iterative prototype development",
	},
	{
		"Layout development, testing, and optimization",
		"Technical complexity and integration challenges",
		"Algorithm optimization and system integration",
		"Agile development methodology and continuous testing",
	},
	{
		"Prototype development and demonstration",
		"Performance optimization and scalability issues",
		"System performance under real-world conditions",
		"Comprehensive testing protocols and performance monitoring",
	},
	{
		"Production and evaluation of pilot batch",
		"Scale-up difficulties and quality assurance",
		"Maintaining quality and performance at scale",
		"Pilot testing program and quality management systems",
	},
}

// Generator produces default field values. The random source is injected so
// tests can seed it deterministically.
type Generator struct {
	rng *rand.Rand
	now func() time.Time
}

// New creates a Generator backed by the given random source. A nil source
// falls back to a time-seeded one.
func New(rng *rand.Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{rng: rng, now: time.Now}
}

// ClassifyDomain selects exactly one domain bucket for a description by
// keyword presence, in fixed priority order.
func ClassifyDomain(description string) Domain {
	lower := strings.ToLower(description)
	for _, b := range Domains {
		for _, kw := range b.Keywords {
			if strings.Contains(lower, kw) {
				return b
			}
		}
	}
	return Domains[len(Domains)-1]
}

// Generate returns a record of placeholder values for the generator's fixed
// field subset, all tagged default. Values are randomized within realistic
// bounds but internally consistent (job counts ordered, TRL progression
// valid). The current extracted record is intentionally not an input.
func (g *Generator) Generate(description string) model.Record {
	rec := model.NewRecord()
	set := func(id, value string) {
		rec.Set(model.FieldValue{FieldID: id, Value: value, Provenance: model.ProvenanceDefault})
	}

	bucket := ClassifyDomain(description)
	set("RD_PRIORITY", bucket.RDPriority)
	set("PROJECT_TYPE", bucket.ProjectType)
	set("RESEARCH_AREA", bucket.ResearchArea)
	set("CESE_CLASS", bucket.CESEClass)
	set("PROJECT_KEYWORDS", bucket.ProjectKeywords)
	if bucket.ProjectSubtopic != "" {
		set("PROJECT_SUBTOPIC", bucket.ProjectSubtopic)
	}

	set("COMPLETION_DATE", g.now().Format("02.01.2006"))

	// Company identity and shareholding.
	set("COMPANY_NAME", companyNames[g.rng.Intn(len(companyNames))])
	set("COMPANY_CODE", fmt.Sprintf("LT%d", g.intIn(300000000, 399999999)))
	set("MANAGER_POSITION", "CEO")
	set("MANAGER_NAME", managerNames[g.rng.Intn(len(managerNames))])
	set("MANAGER_TITLE", "CEO")
	set("A_S_Ns", "Baltic Investment Group UAB")
	set("SHARE_HS", fmt.Sprintf("%d", g.intIn(60, 100)))
	set("N_L_E", "Baltic Investment Group UAB")
	set("I_C", fmt.Sprintf("LT%d", g.intIn(100000000, 199999999)))
	set("Sharehol", fmt.Sprintf("%d", g.intIn(60, 95)))
	set("S_H", "European Tech Holdings AS")
	set("S_I", fmt.Sprintf("EE%d", g.intIn(10000000, 19999999)))
	set("S_S", fmt.Sprintf("%d", g.intIn(25, 75)))

	// Assets.
	set("N_As", "R&D Laboratory and Computing Infrastructure")
	set("F_Os", "Owned")
	set("S_Us", fmt.Sprintf("%d m²", g.intIn(150, 300)))
	set("W_R_Ds", "All R&D activities, testing, prototype development")

	// Financials.
	set("RD_BUDGET", fmt.Sprintf("%d", g.intIn(150000, 300000)))
	set("RD_EXPENDITURE_2022", fmt.Sprintf("%d", g.intIn(100000, 200000)))
	set("RD_EXPENDITURE_2023", fmt.Sprintf("%d", g.intIn(150000, 250000)))
	set("REVENUE_PROJECTION", fmt.Sprintf("%d", g.intIn(400000, 800000)))
	set("REVENUE_RATIO", fmt.Sprintf("%.1f", 2.0+g.rng.Float64()*2.0))

	// Technical maturity and timeline.
	set("CURRENT_TPL", "TPL 3")
	set("TARGET_TPL", "TPL 6")
	set("NOVELTY_LEVEL", "market level")
	set("PROJECT_START_MONTH", "1")
	set("PROJECT_COMPLETION_MONTH", "12")

	// Job counts, ordered: after <= during <= total.
	total := g.intIn(3, 8)
	during := g.intIn(2, 5)
	if during > total {
		during = total
	}
	after := g.intIn(1, 3)
	if after > during {
		after = during
	}
	set("TOTAL_RESEARCH_JOBS", fmt.Sprintf("%d", total))
	set("JOBS_DURING_PROJECT", fmt.Sprintf("%d", during))
	set("JOBS_AFTER_PROJECT", fmt.Sprintf("%d", after))

	// Justifications and impact.
	set("JUS_PRO", "This product introduces innovative technological solutions that address current market gaps and provide significant competitive advantages")
	set("JUS_R_D_I", "The project aligns with national smart specialization priorities and addresses critical market needs through advanced R&D activities")
	set("TPL_JUSTIFICATION", "Progressive development from laboratory validation to market-ready prototype")
	set("PROJECT_IMPACT_TITLE", "Advanced Technology Solution Development")
	set("PROJECT_IMPACT_DESCRIPTION", "Development of innovative technology solution that will significantly impact the market and create new business opportunities")

	// Competition and activity.
	set("COMPETITOR_M", "TechCorp International")
	set("COMPETITOR_MARKET_SHARE", fmt.Sprintf("%d", g.intIn(15, 35)))
	set("MAIN_ACTIVITY", "Research and development in technology solutions")
	set("ACTIVITY_PERCENTAGE", fmt.Sprintf("%d", g.intIn(70, 95)))

	// Four-stage risk assessment table.
	for i, stage := range riskStages {
		n := i + 1
		set(fmt.Sprintf("RISK_STAGE_%d", n), stage[0])
		set(fmt.Sprintf("RISK_DESCRIPTION_%d", n), stage[1])
		set(fmt.Sprintf("CRITICAL_POINT_%d", n), stage[2])
		set(fmt.Sprintf("MITIGATION_ACTION_%d", n), stage[3])
	}

	return rec
}

// intIn returns a random int in [lo, hi].
func (g *Generator) intIn(lo, hi int) int {
	return lo + g.rng.Intn(hi-lo+1)
}
