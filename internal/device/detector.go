// Package device classifies the runtime surface (mobile, tablet, desktop)
// from user-agent and viewport-width signals reported by the client.
package device

import (
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Width thresholds in CSS pixels.
const (
	mobileMaxWidth = 768
	tabletMaxWidth = 1024
)

var (
	mobileKeywords = []string{"android", "iphone", "ipod", "blackberry", "windows phone"}
	tabletKeywords = []string{"ipad", "tablet", "kindle", "silk", "playbook"}
)

// Classification is the derived device state. Exactly one of the three
// booleans is true at all times.
type Classification struct {
	IsMobile    bool   `json:"isMobile"`
	IsTablet    bool   `json:"isTablet"`
	IsDesktop   bool   `json:"isDesktop"`
	DeviceType  string `json:"deviceType"`
	ScreenWidth int    `json:"screenWidth"`
}

// Classify derives a device classification from a user agent and viewport
// width. Keyword matches win over width, and mobile wins over tablet when
// both keyword sets match.
func Classify(userAgent string, width int) Classification {
	ua := strings.ToLower(userAgent)

	mobileUA := containsAny(ua, mobileKeywords)
	tabletUA := containsAny(ua, tabletKeywords)

	mobileWidth := width <= mobileMaxWidth
	tabletWidth := width > mobileMaxWidth && width <= tabletMaxWidth

	isMobile := mobileUA || (mobileWidth && !tabletUA)
	isTablet := !isMobile && (tabletUA || (tabletWidth && !mobileUA))
	isDesktop := !isMobile && !isTablet

	deviceType := "desktop"
	switch {
	case isMobile:
		deviceType = "mobile"
	case isTablet:
		deviceType = "tablet"
	}

	return Classification{
		IsMobile:    isMobile,
		IsTablet:    isTablet,
		IsDesktop:   isDesktop,
		DeviceType:  deviceType,
		ScreenWidth: width,
	}
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

// Detector holds the latest classification and notifies subscribers when it
// changes. Updates are driven by client-reported resize and orientation
// events; the detector itself runs no timers and has no I/O side effects.
type Detector struct {
	mu      sync.RWMutex
	current Classification
	subs    []func(Classification)
	log     *zap.Logger
}

// NewDetector seeds the detector with a desktop classification until the
// first viewport report arrives.
func NewDetector(log *zap.Logger) *Detector {
	if log == nil {
		log = zap.NewNop()
	}
	return &Detector{
		current: Classification{IsDesktop: true, DeviceType: "desktop", ScreenWidth: 1920},
		log:     log.Named("device"),
	}
}

// Current returns the latest classification.
func (d *Detector) Current() Classification {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.current
}

// Update recomputes the classification from fresh signals and notifies
// subscribers if the device type or width changed.
func (d *Detector) Update(userAgent string, width int) Classification {
	next := Classify(userAgent, width)

	d.mu.Lock()
	changed := next != d.current
	d.current = next
	subs := d.subs
	d.mu.Unlock()

	if changed {
		d.log.Debug("device classification changed",
			zap.String("deviceType", next.DeviceType),
			zap.Int("screenWidth", next.ScreenWidth))
		for _, fn := range subs {
			fn(next)
		}
	}
	return next
}

// Subscribe registers a callback invoked on every classification change.
func (d *Detector) Subscribe(fn func(Classification)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.subs = append(d.subs, fn)
}
