package outcome

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromParams(t *testing.T) {
	view := FromParams("BR123", "300")
	assert.Equal(t, "BR123", view.BookingReference)
	assert.Equal(t, float64(300), view.Amount)
}

func TestFromParamsMalformedAmount(t *testing.T) {
	view := FromParams("BR123", "")
	assert.Equal(t, float64(0), view.Amount)

	view = FromParams("BR123", "abc")
	assert.Equal(t, float64(0), view.Amount)
}
