package embed

import (
	"strconv"

	"github.com/flowframe/embed/internal/message"
)

// handleResize applies reported dimensions to the frame independently: a
// present width updates only width, a present height only height.
func (c *Controller) handleResize(ev message.Event) {
	if v, ok := cssDimension(ev.Width); ok {
		c.frame.SetWidth(v)
	}
	if v, ok := cssDimension(ev.Height); ok {
		c.frame.SetHeight(v)
	}
}

// cssDimension renders a wire dimension as a style value. Numbers become
// integer pixel values; strings pass through untouched.
func cssDimension(v interface{}) (string, bool) {
	switch d := v.(type) {
	case float64:
		return strconv.FormatInt(int64(d), 10) + "px", true
	case string:
		return d, true
	default:
		return "", false
	}
}
