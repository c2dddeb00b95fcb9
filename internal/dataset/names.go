package dataset

// DefaultSheetBase is the published spreadsheet export URL; a dataset's gid
// is appended to it.
const DefaultSheetBase = "https://docs.google.com/spreadsheets/d/1RZ7LsGXl2GQtlp_H_kysMmDldKF4uGv5QD_KAzQHTKg/export?format=csv&gid="

// Dataset names.
const (
	HomeGlance           = "homeGlance"
	HomeExplore          = "homeExplore"
	HomeTestimonials     = "homeTestimonials"
	IntroContent         = "introContent"
	ProgrammesMeta       = "programmesMeta"
	ProgrammesCards      = "programmesCards"
	FacultyProfiles      = "facultyProfiles"
	ResearchMeta         = "researchMeta"
	ResearchAreas        = "researchAreas"
	ResearchProjects     = "researchProjects"
	NewsMeta             = "newsMeta"
	NewsItems            = "newsItems"
	GalleryMeta          = "galleryMeta"
	GalleryItems         = "galleryItems"
	ProjectsItems        = "projectsItems"
	ProjectsMeta         = "projectsMeta"
	CareerMeta           = "careerMeta"
	CareerLegend         = "careerLegend"
	CareerConnectorCards = "careerConnectorCards"
	CareerNodes          = "careerNodes"
	CareerDetails        = "careerDetails"
	GameCareers          = "gameCareers"
	GameMissions         = "gameMissions"
	GameOptions          = "gameOptions"
	PageCopy             = "pageCopy"
)

// DefaultGIDs maps dataset names to their sheet tab ids.
func DefaultGIDs() map[string]string {
	return map[string]string{
		HomeGlance:           "658317754",
		HomeExplore:          "212523631",
		HomeTestimonials:     "202581391",
		IntroContent:         "1693198998",
		ProgrammesMeta:       "1668694487",
		ProgrammesCards:      "735159063",
		FacultyProfiles:      "291092648",
		ResearchMeta:         "1228924024",
		ResearchAreas:        "1158782783",
		ResearchProjects:     "1493476684",
		NewsMeta:             "1075587213",
		NewsItems:            "1667932999",
		GalleryMeta:          "1687826536",
		GalleryItems:         "889330208",
		ProjectsItems:        "1105126191",
		ProjectsMeta:         "794340848",
		CareerMeta:           "1740934720",
		CareerLegend:         "1381692189",
		CareerConnectorCards: "2030664227",
		CareerNodes:          "556552219",
		CareerDetails:        "866345003",
		GameCareers:          "0",
		GameMissions:         "1595079603",
		GameOptions:          "1628210072",
		PageCopy:             "1194194423",
	}
}
