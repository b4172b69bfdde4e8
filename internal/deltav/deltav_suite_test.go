package deltav_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestDeltaV(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "DeltaV Suite")
}
