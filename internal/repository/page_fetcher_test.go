package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectorFor(t *testing.T) {
	assert.Equal(t, XPath(`//*[@id="body-wrapper"]/header`), SelectorFor(`//*[@id="body-wrapper"]/header`))
	assert.Equal(t, XPath(`(//button)[2]`), SelectorFor(` (//button)[2] `))
	assert.Equal(t, CSS(".ede17658 button"), SelectorFor(".ede17658 button"))
}
