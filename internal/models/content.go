package models

// Block is a titled piece of copy (hero, section intro)
type Block struct {
	Title string
	Text  string
}

// Empty reports whether the block carries no copy
func (b Block) Empty() bool {
	return b.Title == "" && b.Text == ""
}

// Card is a generic content card
type Card struct {
	Title       string
	Text        string
	Tags        []string
	ButtonLabel string
	ButtonHref  string
}

// FilterButton is one entry of a filter row
type FilterButton struct {
	Key    string
	Label  string
	Active bool
}

type Testimonial struct {
	Group     string
	Name      string
	Initial   string
	Text      string
	Role      string
	Programme string
	Tags      []string
}

// Meta joins programme and role the way the card footer shows them
func (t Testimonial) Meta() string {
	if t.Role == "" {
		return t.Programme
	}
	return t.Programme + " · " + t.Role
}

// FacultyProfile is a staff member card plus detail modal content
type FacultyProfile struct {
	Name            string
	Role            string
	Email           string
	Office          string
	Website         string
	Areas           []string
	Tags            []string
	ShortBio        string
	About           string
	Publications    []string
	Advice          string
	Initials        string
	OpenForResearch bool
}

// HasContact reports whether any contact detail is set
func (f FacultyProfile) HasContact() bool {
	return f.Email != "" || f.Office != "" || f.Website != ""
}

type NewsItem struct {
	Year        string
	Category    string
	BadgeLabel  string
	BadgeType   string
	DateDisplay string
	Title       string
	Summary     string
	Tags        []string
	FooterText  string
	LinkURL     string
}

type GalleryItem struct {
	Src          string
	Alt          string
	Caption      string
	Theme        string
	OverlayLabel string
}

type Project struct {
	Title       string
	Summary     string
	LevelKey    string
	LevelLabel  string
	ThemeKey    string
	TypeKey     string
	TypeLabel   string
	Year        string
	Student     string
	Programme   string
	Supervisors string
	Tags        []string
	LinkURL     string
	LinkLabel   string
}

// PathwayNode is a node of the career pathway map
type PathwayNode struct {
	Branch   string
	Type     string
	TargetID string
	Title    string
	Text     string
	Order    int
}

// PathwayDetail is the expanded description a node points at
type PathwayDetail struct {
	ID     string
	Title  string
	Intro  string
	Items  []string
	Active bool
}
