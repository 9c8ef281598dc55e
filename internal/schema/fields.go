package schema

// Category names used by the built-in MTEP business plan schema.
const (
	CategoryCompanyInfo     = "company_info"
	CategoryProjectDetails  = "project_details"
	CategoryFinancialData   = "financial_data"
	CategoryTechnicalInfo   = "technical_info"
	CategoryCompetitionJobs = "competition_jobs"
	CategoryRiskAssessment  = "risk_assessment"
)

// defaultCategories is the built-in schema for the Lithuanian MTEP (R&D)
// business plan package. Field ids match the anchor names used by the
// downstream document templates, so they are not renamed to friendlier forms.
var defaultCategories = []Category{
	{
		Name: CategoryCompanyInfo,
		Fields: []string{
			"COMPANY_NAME", "COMPANY_CODE", "MANAGER_POSITION", "MANAGER_NAME",
			"COMPLETION_DATE", "MAIN_ACTIVITY", "ACTIVITY_PERCENTAGE", "CESE_CLASS",
			"N_L_E", "I_C", "Sharehol", "A_S_Ns", "SHARE_HS",
			"S_H", "S_I", "S_S", "MANAGER_TITLE", "SUMMARY_1", "INNOVATIVENESS",
			"E_S_RES", "E_S_R&D", "E_S_R", "A_S_RES", "A_S_R&D", "A_S_R",
			"A_S_P", "N_E", "N_R", "N_T", "N_W_T", "N_P_T",
			"LITERATURE_REVIEW", "IPR", "COMMERCIALIZATION", "COLLABORATION",
			"LITERATURE_SOURCES",
			"RD_JUSTIFICATION_1", "RD_JUSTIFICATION_2", "RD_JUSTIFICATION_3",
			"RD_JUSTIFICATION_4", "RD_JUSTIFICATION_5",
			"MARKET_ANALYSIS", "PRODUCT_PRICING", "PRICING_JUSTIFICATION",
			"RD_ACTIVITIES_PLAN",
		},
	},
	{
		Name: CategoryProjectDetails,
		Fields: []string{
			"PRODUCT_NAME", "JUS_PRO", "NOVELTY_LEVEL", "JUS_R_D_I", "RD_PRIORITY",
			"RESEARCH_AREA", "PROJECT_KEYWORDS", "PROJECT_TYPE", "PROJECT_SUBTOPIC",
			"N_As", "F_Os", "S_Us", "W_R_Ds", "PRODUCTS_OFFERED", "PER_SALES",
		},
	},
	{
		Name: CategoryFinancialData,
		Fields: []string{
			"RD_BUDGET", "REVENUE_PROJECTION", "REVENUE_RATIO",
			"RD_EXPENDITURE_2022", "RD_EXPENDITURE_2023",
		},
	},
	{
		Name: CategoryTechnicalInfo,
		Fields: []string{
			"CURRENT_TPL", "TARGET_TPL", "TPL_JUSTIFICATION", "PROJECT_IMPACT_TITLE",
			"PROJECT_START_MONTH", "PROJECT_COMPLETION_MONTH", "PROJECT_IMPACT_DESCRIPTION",
		},
	},
	{
		Name: CategoryCompetitionJobs,
		Fields: []string{
			"COMPETITOR_M", "COMPETITOR_MARKET_SHARE", "TOTAL_RESEARCH_JOBS",
			"JOBS_DURING_PROJECT", "JOBS_AFTER_PROJECT",
		},
	},
	{
		Name: CategoryRiskAssessment,
		Fields: []string{
			"RISK_STAGE_1", "RISK_DESCRIPTION_1", "CRITICAL_POINT_1", "MITIGATION_ACTION_1",
			"RISK_STAGE_2", "RISK_DESCRIPTION_2", "CRITICAL_POINT_2", "MITIGATION_ACTION_2",
			"RISK_STAGE_3", "RISK_DESCRIPTION_3", "CRITICAL_POINT_3", "MITIGATION_ACTION_3",
			"RISK_STAGE_4", "RISK_DESCRIPTION_4", "CRITICAL_POINT_4", "MITIGATION_ACTION_4",
		},
	},
}

// Default returns the built-in MTEP schema. The built-in category data is
// known unique, so construction cannot fail.
func Default() *Registry {
	r, err := New(defaultCategories)
	if err != nil {
		panic(err)
	}
	return r
}

// fieldDescriptions gives operators context when entering values manually and
// grounds single-field AI generation prompts.
var fieldDescriptions = map[string]string{
	"COMPANY_NAME":        "Full legal name of the company (e.g. 'TechnoSolutions Baltic UAB')",
	"COMPANY_CODE":        "Company registration code (e.g. 'LT123456789')",
	"MANAGER_POSITION":    "Manager position (e.g. 'CEO', 'CTO')",
	"MANAGER_NAME":        "Full name of the project manager",
	"MANAGER_TITLE":       "Manager title",
	"COMPLETION_DATE":     "Form completion date (DD.MM.YYYY)",
	"MAIN_ACTIVITY":       "Main business activity description",
	"ACTIVITY_PERCENTAGE": "Share of the main activity in total turnover (e.g. '75')",
	"CESE_CLASS":          "Economic activity classification code (e.g. '62.01')",
	"N_L_E":               "Name of the legal entity holding shares in the applicant",
	"I_C":                 "Identification code of that legal entity",
	"Sharehol":            "Shareholding percentage held in the applicant",
	"A_S_Ns":              "Names of the applicant's shareholders",
	"SHARE_HS":            "Shareholding percentage for each shareholder",
	"S_H":                 "Legal entity in which the applicant's shareholders hold shares",
	"S_I":                 "Identification code of that legal entity",
	"S_S":                 "Shareholding percentage held by the shareholder in that entity",
	"SUMMARY_1":           "200-250 word summary: company, product, market potential, costs, plans",
	"INNOVATIVENESS":      "What makes the product innovative",
	"LITERATURE_REVIEW":   "Review of scientific literature supporting the R&D need",
	"LITERATURE_SOURCES":  "Cited literature sources",
	"IPR":                 "Intellectual property rights strategy",
	"COMMERCIALIZATION":   "Commercialization plan for project results",
	"COLLABORATION":       "Planned collaboration with research institutions",
	"MARKET_ANALYSIS":     "Analysis of the target market and opportunities",
	"PRODUCT_PRICING":     "Planned product pricing",
	"PRICING_JUSTIFICATION": "Justification of the pricing model",
	"RD_ACTIVITIES_PLAN":  "Plan of R&D activities across project stages",
	"RD_JUSTIFICATION_1":  "R&D justification: scientific uncertainty",
	"RD_JUSTIFICATION_2":  "R&D justification: novelty of the solution",
	"RD_JUSTIFICATION_3":  "R&D justification: systematic approach",
	"RD_JUSTIFICATION_4":  "R&D justification: transferability of results",
	"RD_JUSTIFICATION_5":  "R&D justification: reproducibility of results",
	"PRODUCT_NAME":        "Name of the product or service being developed",
	"JUS_PRO":             "Product novelty justification",
	"NOVELTY_LEVEL":       "Novelty level: company level, market level or global level",
	"JUS_R_D_I":           "R&D&I priority justification",
	"RD_PRIORITY":         "Smart specialization R&D priority category",
	"RESEARCH_AREA":       "Research area (e.g. 'Computer Sciences')",
	"PROJECT_KEYWORDS":    "Project keywords, comma separated",
	"PROJECT_TYPE":        "Project type category",
	"PROJECT_SUBTOPIC":    "Specific project subtopic",
	"N_As":                "Asset name (equipment, software, premises)",
	"F_Os":                "Form of ownership (owned, leased, shared)",
	"S_Us":                "Share or amount of the asset used for R&D",
	"W_R_Ds":              "R&D activities the asset will be used for",
	"PRODUCTS_OFFERED":    "Products or services currently offered",
	"PER_SALES":           "Share of sales from the new product, percent",
	"RD_BUDGET":           "R&D budget in euros (e.g. '200000')",
	"REVENUE_PROJECTION":  "Revenue projection in euros",
	"REVENUE_RATIO":       "Revenue to cost ratio",
	"RD_EXPENDITURE_2022": "R&D expenditure for 2022 in euros",
	"RD_EXPENDITURE_2023": "R&D expenditure for 2023 in euros",
	"CURRENT_TPL":         "Current Technology Readiness Level (1-9)",
	"TARGET_TPL":          "Target Technology Readiness Level (1-9)",
	"TPL_JUSTIFICATION":   "Justification of the planned TRL progression",
	"PROJECT_IMPACT_TITLE":       "Project impact title",
	"PROJECT_START_MONTH":        "Project start month",
	"PROJECT_COMPLETION_MONTH":   "Project completion month",
	"PROJECT_IMPACT_DESCRIPTION": "Detailed project impact description",
	"COMPETITOR_M":            "Main competitor name",
	"COMPETITOR_MARKET_SHARE": "Competitor market share percentage",
	"TOTAL_RESEARCH_JOBS":     "Total research jobs to be created",
	"JOBS_DURING_PROJECT":     "Research jobs during the project",
	"JOBS_AFTER_PROJECT":      "Research jobs maintained after the project",
	"RISK_STAGE_1":        "First project stage",
	"RISK_DESCRIPTION_1":  "Risk description for the first stage",
	"CRITICAL_POINT_1":    "Critical point of the first stage",
	"MITIGATION_ACTION_1": "Mitigation action for the first stage",
	"RISK_STAGE_2":        "Second project stage",
	"RISK_DESCRIPTION_2":  "Risk description for the second stage",
	"CRITICAL_POINT_2":    "Critical point of the second stage",
	"MITIGATION_ACTION_2": "Mitigation action for the second stage",
	"RISK_STAGE_3":        "Third project stage",
	"RISK_DESCRIPTION_3":  "Risk description for the third stage",
	"CRITICAL_POINT_3":    "Critical point of the third stage",
	"MITIGATION_ACTION_3": "Mitigation action for the third stage",
	"RISK_STAGE_4":        "Fourth project stage",
	"RISK_DESCRIPTION_4":  "Risk description for the fourth stage",
	"CRITICAL_POINT_4":    "Critical point of the fourth stage",
	"MITIGATION_ACTION_4": "Mitigation action for the fourth stage",
}
