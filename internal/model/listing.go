package model

// Event is an upcoming community event.
type Event struct {
	ID       string   `json:"id" yaml:"id"`
	Title    string   `json:"title" yaml:"title"`
	Date     string   `json:"date" yaml:"date"`
	Time     string   `json:"time" yaml:"time"`
	Location string   `json:"location" yaml:"location"`
	Tags     []string `json:"tags" yaml:"tags"`
}

func (e Event) SearchFields() []string { return []string{e.Title, e.Location} }
func (e Event) TagSet() []string       { return e.Tags }

// Resource is a guide, video or template in the resource library.
type Resource struct {
	ID       string `json:"id" yaml:"id"`
	Title    string `json:"title" yaml:"title"`
	Type     string `json:"type" yaml:"type"`
	Category string `json:"category" yaml:"category"`
}

func (r Resource) SearchFields() []string { return []string{r.Title, r.Type, r.Category} }
func (r Resource) TagSet() []string       { return []string{r.Category} }

// Mentor is a member offering mentorship.
type Mentor struct {
	ID        string   `json:"id" yaml:"id"`
	Name      string   `json:"name" yaml:"name"`
	Role      string   `json:"role" yaml:"role"`
	Expertise []string `json:"expertise" yaml:"expertise"`
	Image     string   `json:"image,omitempty" yaml:"image"`
}

func (m Mentor) SearchFields() []string { return []string{m.Name, m.Role} }
func (m Mentor) TagSet() []string       { return m.Expertise }
