package metatags

// Status grades a composed tag against its length limit.
type Status string

const (
	StatusEmpty   Status = "empty"
	StatusGood    Status = "good"
	StatusWarning Status = "warning"
)

// Grade returns the status of s for the given limit.
func Grade(s string, limit int) Status {
	switch n := length(s); {
	case n == 0:
		return StatusEmpty
	case n <= limit:
		return StatusGood
	default:
		return StatusWarning
	}
}

// TitleStatus grades a title against TitleLimit.
func TitleStatus(title string) Status { return Grade(title, TitleLimit) }

// DescriptionStatus grades a description against DescriptionLimit.
func DescriptionStatus(desc string) Status { return Grade(desc, DescriptionLimit) }

// Recommendations lists length advice for a composed result.
func Recommendations(r *Result) []string {
	var recommendations []string

	switch n := length(r.Title); {
	case n == 0:
		recommendations = append(recommendations, "Add a title tag to your page")
	case n < shortTitle:
		recommendations = append(recommendations, "Title tag is too short (should be 30-60 characters)")
	case n > TitleLimit:
		recommendations = append(recommendations, "Title tag is too long (should be 30-60 characters)")
	}

	switch n := length(r.Description); {
	case n == 0:
		recommendations = append(recommendations, "Add a meta description")
	case n < 120:
		recommendations = append(recommendations, "Meta description is too short (should be 120-160 characters)")
	case n > DescriptionLimit:
		recommendations = append(recommendations, "Meta description is too long (should be 120-160 characters)")
	}

	return recommendations
}
