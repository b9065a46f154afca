package extract

// categoryKeys maps a semantic category to the Elementor settings keys
// that carry it. Order is fixed: extraction iterates categories and
// keys exactly as listed so record order is deterministic.
type categoryKeys struct {
	Category string
	Keys     []string
}

// textKeys are the known text-bearing settings keys per category.
var textKeys = []categoryKeys{
	{"heading", []string{"title", "heading", "subtitle", "title_text"}},
	{"description", []string{"description", "description_text", "description_text_a", "content", "text", "editor", "caption"}},
	{"button", []string{"button_text", "btn_text"}},
	{"testimonial", []string{"testimonial_content", "testimonial_name", "testimonial_job"}},
	{"tab", []string{"tab_title", "tab_content"}},
	{"list", []string{"list_title", "list_content"}},
}

// richTextKeys are free-text editor fields whose values are HTML and
// need tag stripping before use.
var richTextKeys = map[string]bool{
	"editor":              true,
	"testimonial_content": true,
	"tab_content":         true,
}

// colorKeys are the known color-bearing settings keys per category.
var colorKeys = []categoryKeys{
	{"background", []string{"background_color", "background_overlay_color", "_background_color"}},
	{"text", []string{"title_color", "color", "text_color", "description_color", "heading_color"}},
	{"button", []string{"button_background_color", "button_text_color", "border_color"}},
}
