package ingest

import "github.com/thesisdesk/titledex/internal/domain/title"

// defaultTitles is the embedded fallback dataset used when no corpus source
// is configured or the configured sheet cannot be reached.
var defaultTitles = []string{
	"AI and Blockchain in Supply Chain Management",
	"Machine Learning Applications in Healthcare",
	"Digital Transformation in Banking Sector",
	"Sustainability Practices in Retail Industry",
	"Customer Data Analytics using Python",
	"Impact of Social Media on Consumer Behavior",
	"Smart City Development using IoT and AI",
	"E-commerce Strategies for Small Businesses",
	"Cybersecurity Challenges in Cloud Computing",
	"Automation and Robotics in Manufacturing",
}

// DefaultTitles returns a fresh copy of the fallback dataset.
func DefaultTitles() []title.Title {
	titles := make([]title.Title, len(defaultTitles))
	for i, text := range defaultTitles {
		titles[i] = title.Reconstruct(text, nil)
	}
	return titles
}
