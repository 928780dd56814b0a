package water_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestWater(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Water Correlations Suite")
}
