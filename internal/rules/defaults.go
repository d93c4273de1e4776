package rules

// DefaultVersion identifies the built-in rule tables.
const DefaultVersion = "bg-zpk-2025.1"

// Default returns the built-in rule set for Bulgarian consumer-credit law
// (ЗПК, ЗЗП). Keywords and expressions are written in folded form: lowercase,
// combining marks removed, matched against text folded the same way.
func Default() RuleSet {
	return RuleSet{
		Version: DefaultVersion,
		FeeRules: []FeeRule{
			// Specific illegal fee categories first, so a generic keyword
			// never shadows them.
			{
				ID:         "fee-fast-review",
				Keyword:    "бързо разглеждане",
				Status:     "ILLEGAL",
				LegalBasis: "чл. 10а, ал. 2 ЗПК",
				Note:       "такса за действие, свързано с усвояване и управление на кредита",
			},
			{
				ID:         "fee-express",
				Keyword:    "експресно",
				Status:     "ILLEGAL",
				LegalBasis: "чл. 10а, ал. 2 ЗПК",
			},
			{
				ID:         "fee-review",
				Keyword:    "разглеждане",
				Status:     "ILLEGAL",
				LegalBasis: "чл. 10а, ал. 2 ЗПК",
			},
			{
				ID:         "fee-administration",
				Keyword:    "администриране",
				Status:     "ILLEGAL",
				LegalBasis: "чл. 10а, ал. 2 ЗПК",
			},
			{
				ID:         "fee-management",
				Keyword:    "управление",
				Status:     "ILLEGAL",
				LegalBasis: "чл. 10а, ал. 2 ЗПК",
			},
			{
				ID:         "fee-risk-assessment",
				Keyword:    "оценка на риск",
				Status:     "ILLEGAL",
				LegalBasis: "чл. 10а, ал. 2 ЗПК",
			},
			{
				ID:         "fee-guarantee-penalty",
				Keyword:    "непредоставяне на обезпечение",
				Status:     "ILLEGAL",
				LegalBasis: "чл. 19, ал. 4 ЗПК",
				Note:       "скрито оскъпяване, заобикалящо тавана на ГПР",
			},
			{
				ID:         "fee-insurance",
				Keyword:    "застрахователна премия",
				Status:     "LEGAL",
				LegalBasis: "чл. 19, ал. 3, т. 2 ЗПК",
			},
			{
				ID:         "fee-notary",
				Keyword:    "нотариалн",
				Status:     "LEGAL",
				LegalBasis: "чл. 19, ал. 3, т. 3 ЗПК",
			},
		},
		ClausePatterns: []ClausePattern{
			{
				ID:         "clause-unilateral-change",
				Name:       "Едностранно изменение на условията",
				Expr:       `(едностранно да (промени|измени)|може да измени по всяко време|право(то)? за промяна на условията|изменение без предварително уведомление)`,
				LegalBasis: "чл. 143, ал. 1, т. 5 ЗЗП",
				Severity:   "HIGH",
			},
			{
				ID:         "clause-early-repayment-ban",
				Name:       "Ограничаване на предсрочното погасяване",
				Expr:       `(предсрочно(то)? погасяване не се допуска|забрана за предсрочно погасяване|обезщетение за предсрочно.{0,40}процент)`,
				LegalBasis: "чл. 29 ЗПК",
				Severity:   "CRITICAL",
			},
			{
				ID:         "clause-excessive-penalty",
				Name:       "Прекомерна неустойка",
				Expr:       `(неустойка в размер на|обезщетение за забава|договорна лихва.{0,40}процент)`,
				LegalBasis: "чл. 143, ал. 1, т. 3 ЗЗП",
				Severity:   "MEDIUM",
			},
			{
				ID:         "clause-undisclosed-costs",
				Name:       "Разходи, невключени в ГПР",
				Expr:       `(допълнителни (такси|разходи), които не са (посочени|включени)|разходи, невключени в гпр)`,
				LegalBasis: "чл. 11, ал. 1, т. 10 ЗПК",
				Severity:   "HIGH",
			},
			{
				ID:         "clause-rights-waiver",
				Name:       "Отказ от права на потребителя",
				Expr:       `се отказва от правото`,
				LegalBasis: "чл. 143, ал. 1, т. 1 ЗЗП",
				Severity:   "HIGH",
			},
			{
				ID:         "clause-auto-renewal",
				Name:       "Автоматично подновяване",
				Expr:       `автоматично (се )?подновяв`,
				LegalBasis: "чл. 143, ал. 1, т. 9 ЗЗП",
				Severity:   "MEDIUM",
			},
			{
				ID:         "clause-creditor-discretion",
				Name:       "Условия по преценка на кредитора",
				Expr:       `по преценка на кредитора`,
				LegalBasis: "чл. 143, ал. 1, т. 9 ЗЗП",
				Severity:   "MEDIUM",
			},
		},
	}
}
