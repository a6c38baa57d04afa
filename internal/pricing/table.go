package pricing

// table holds every published plan keyed by package type, then sessions per
// week. The display strings are the source of truth; numeric values are
// parsed out of them on demand.
var table = map[string]map[string][]Plan{
	"1-2": {
		"2": {
			{
				Duration:   "MONTHLY",
				Price:      "₱5,200",
				Sessions:   "8 sessions",
				PerSession: "₱650/session",
				Features:   []string{"1:2 teacher ratio", "8 sessions per month", "Interactive group learning", "Progress tracking"},
			},
			{
				Duration:   "QUARTERLY",
				Price:      "₱14,400",
				Sessions:   "26 sessions (24+2 free)",
				PerSession: "₱600/session",
				Features:   []string{"1:2 teacher ratio", "26 sessions total", "2 FREE sessions", "Priority scheduling"},
				Popular:    true,
			},
			{
				Duration:   "SEMI-ANNUAL",
				Price:      "₱26,400",
				Sessions:   "51 sessions (48+3 free)",
				PerSession: "₱550/session",
				Features:   []string{"1:2 teacher ratio", "51 sessions total", "3 FREE sessions", "Extended support"},
			},
			{
				Duration:   "ANNUAL",
				Price:      "₱48,000",
				Sessions:   "101 sessions (96+5 free)",
				PerSession: "₱500/session",
				Features:   []string{"1:2 teacher ratio", "101 sessions total", "5 FREE sessions", "Best value"},
			},
		},
		"3": {
			{
				Duration:   "MONTHLY",
				Price:      "₱7,800",
				Sessions:   "12 sessions",
				PerSession: "₱650/session",
				Features:   []string{"1:2 teacher ratio", "12 sessions per month", "Interactive group learning", "Progress tracking"},
			},
			{
				Duration:   "QUARTERLY",
				Price:      "₱21,600",
				Sessions:   "38 sessions (36+2 free)",
				PerSession: "₱600/session",
				Features:   []string{"1:2 teacher ratio", "38 sessions total", "2 FREE sessions", "Priority scheduling"},
				Popular:    true,
			},
			{
				Duration:   "SEMI-ANNUAL",
				Price:      "₱39,600",
				Sessions:   "75 sessions (72+3 free)",
				PerSession: "₱550/session",
				Features:   []string{"1:2 teacher ratio", "75 sessions total", "3 FREE sessions", "Extended support"},
			},
			{
				Duration:   "ANNUAL",
				Price:      "₱72,000",
				Sessions:   "149 sessions (144+5 free)",
				PerSession: "₱500/session",
				Features:   []string{"1:2 teacher ratio", "149 sessions total", "5 FREE sessions", "Best value"},
			},
		},
		"5": {
			{
				Duration:   "MONTHLY",
				Price:      "₱13,000",
				Sessions:   "20 sessions",
				PerSession: "₱650/session",
				Features:   []string{"1:2 teacher ratio", "20 sessions per month", "Interactive group learning", "Progress tracking"},
			},
			{
				Duration:   "QUARTERLY",
				Price:      "₱36,000",
				Sessions:   "62 sessions (60+2 free)",
				PerSession: "₱600/session",
				Features:   []string{"1:2 teacher ratio", "62 sessions total", "2 FREE sessions", "Priority scheduling"},
				Popular:    true,
			},
			{
				Duration:   "SEMI-ANNUAL",
				Price:      "₱66,000",
				Sessions:   "123 sessions (120+3 free)",
				PerSession: "₱550/session",
				Features:   []string{"1:2 teacher ratio", "123 sessions total", "3 FREE sessions", "Extended support"},
			},
			{
				Duration:   "ANNUAL",
				Price:      "₱120,000",
				Sessions:   "245 sessions (240+5 free)",
				PerSession: "₱500/session",
				Features:   []string{"1:2 teacher ratio", "245 sessions total", "5 FREE sessions", "Best value"},
			},
		},
	},
	"1-1": {
		"2": {
			{
				Duration:   "MONTHLY",
				Price:      "₱9,600",
				Sessions:   "8 sessions",
				PerSession: "₱1,200/session",
				Features:   []string{"1:1 teacher ratio", "8 sessions per month", "Personalized curriculum", "Flexible scheduling"},
			},
			{
				Duration:   "QUARTERLY",
				Price:      "₱27,600",
				Sessions:   "26 sessions (24+2 free)",
				PerSession: "₱1,150/session",
				Features:   []string{"1:1 teacher ratio", "26 sessions total", "2 FREE sessions", "Dedicated tutor"},
				Popular:    true,
			},
			{
				Duration:   "SEMI-ANNUAL",
				Price:      "₱52,320",
				Sessions:   "51 sessions (48+3 free)",
				PerSession: "₱1,090/session",
				Features:   []string{"1:1 teacher ratio", "51 sessions total", "3 FREE sessions", "Curriculum customization"},
			},
			{
				Duration:   "ANNUAL",
				Price:      "₱93,120",
				Sessions:   "101 sessions (96+5 free)",
				PerSession: "₱970/session",
				Features:   []string{"1:1 teacher ratio", "101 sessions total", "5 FREE sessions", "Best value"},
			},
		},
		"3": {
			{
				Duration:   "MONTHLY",
				Price:      "₱14,400",
				Sessions:   "12 sessions",
				PerSession: "₱1,200/session",
				Features:   []string{"1:1 teacher ratio", "12 sessions per month", "Personalized curriculum", "Flexible scheduling"},
			},
			{
				Duration:   "QUARTERLY",
				Price:      "₱41,400",
				Sessions:   "38 sessions (36+2 free)",
				PerSession: "₱1,150/session",
				Features:   []string{"1:1 teacher ratio", "38 sessions total", "2 FREE sessions", "Dedicated tutor"},
				Popular:    true,
			},
			{
				Duration:   "SEMI-ANNUAL",
				Price:      "₱78,480",
				Sessions:   "75 sessions (72+3 free)",
				PerSession: "₱1,090/session",
				Features:   []string{"1:1 teacher ratio", "75 sessions total", "3 FREE sessions", "Curriculum customization"},
			},
			{
				Duration:   "ANNUAL",
				Price:      "₱139,680",
				Sessions:   "149 sessions (144+5 free)",
				PerSession: "₱970/session",
				Features:   []string{"1:1 teacher ratio", "149 sessions total", "5 FREE sessions", "Best value"},
			},
		},
		"5": {
			{
				Duration:   "MONTHLY",
				Price:      "₱24,000",
				Sessions:   "20 sessions",
				PerSession: "₱1,200/session",
				Features:   []string{"1:1 teacher ratio", "20 sessions per month", "Personalized curriculum", "Flexible scheduling"},
			},
			{
				Duration:   "QUARTERLY",
				Price:      "₱69,000",
				Sessions:   "62 sessions (60+2 free)",
				PerSession: "₱1,150/session",
				Features:   []string{"1:1 teacher ratio", "62 sessions total", "2 FREE sessions", "Dedicated tutor"},
				Popular:    true,
			},
			{
				Duration:   "SEMI-ANNUAL",
				Price:      "₱130,800",
				Sessions:   "123 sessions (120+3 free)",
				PerSession: "₱1,090/session",
				Features:   []string{"1:1 teacher ratio", "123 sessions total", "3 FREE sessions", "Curriculum customization"},
			},
			{
				Duration:   "ANNUAL",
				Price:      "₱232,800",
				Sessions:   "245 sessions (240+5 free)",
				PerSession: "₱970/session",
				Features:   []string{"1:1 teacher ratio", "245 sessions total", "5 FREE sessions", "Best value"},
			},
		},
	},
}

// typeMeta describes each package type for catalogue views.
var typeMeta = map[string]TypeInfo{
	"1-2": {Name: "1:2 Small Group", Description: "Interactive learning with 1 teacher and 2 students"},
	"1-1": {Name: "1:1 Private", Description: "Personalized one-on-one tutoring sessions"},
}
