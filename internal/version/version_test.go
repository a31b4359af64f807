package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBusName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "com.github.vk.mimesummon", BusName(AppID))
	assert.Equal(t, "com.github.vk.my_tool", BusName("my-tool"), "hyphens are not valid in bus names")
}
