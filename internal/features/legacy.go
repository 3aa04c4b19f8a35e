package features

// legacyRecords backs ids that predate the curated dataset. Kept so a
// partial dataset can still answer lookups for the handful of features the
// earlier compatibility table knew about, instead of returning unknown.
var legacyRecords = map[string]Record{
	"css.properties.zoom": {
		ID:    "css.properties.zoom",
		Title: "zoom",
		Group: "css",
		Status: RecordStatus{
			Baseline: BaselineFlag{IsBool: false, Str: "low"},
			Support: map[string]SupportValue{
				"chrome":  {Version: "1"},
				"edge":    {Version: "12"},
				"firefox": {Version: "126"},
				"safari":  {Version: "3.1"},
			},
		},
	},
	"api.BatteryStatus": {
		ID:         "api.BatteryStatus",
		Title:      "Battery Status",
		Group:      "api",
		Deprecated: true,
		Status: RecordStatus{
			Baseline: BaselineFlag{IsBool: true, Bool: false},
			Support: map[string]SupportValue{
				"chrome":  {Version: "38"},
				"edge":    {Version: "79"},
				"firefox": {IsBool: true, Bool: false},
				"safari":  {IsBool: true, Bool: false},
			},
		},
	},
	"html.elements.marquee": {
		ID:         "html.elements.marquee",
		Title:      "<marquee>",
		Group:      "html",
		Deprecated: true,
		Status: RecordStatus{
			Baseline: BaselineFlag{IsBool: true, Bool: false},
			Support: map[string]SupportValue{
				"chrome":  {Version: "1"},
				"edge":    {Version: "12"},
				"firefox": {Version: "1"},
				"safari":  {Version: "1.2"},
			},
		},
	},
}

func legacyRecord(id string) *Record {
	rec, ok := legacyRecords[id]
	if !ok {
		return nil
	}
	return &rec
}
