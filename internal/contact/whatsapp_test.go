package contact

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInquiryLink(t *testing.T) {
	link, err := InquiryLink("+237 670 00 00 01", "Bonjour, je suis intéressé")
	assert.NoError(t, err)
	assert.Equal(t, "https://wa.me/237670000001?text=Bonjour%2C+je+suis+int%C3%A9ress%C3%A9", link)
}

func TestInquiryLinkNoMessage(t *testing.T) {
	link, err := InquiryLink("237670000001", "")
	assert.NoError(t, err)
	assert.Equal(t, "https://wa.me/237670000001", link)
}

func TestInquiryLinkBadPhone(t *testing.T) {
	_, err := InquiryLink("12", "hello")
	assert.Error(t, err)
}

func TestPropertyInquiry(t *testing.T) {
	msg := PropertyInquiry("Bonjour", "Villa moderne", "https://mboaimmo.cm/p/1")
	assert.Equal(t, "Bonjour : Villa moderne - https://mboaimmo.cm/p/1", msg)

	assert.Equal(t, "Bonjour", PropertyInquiry("Bonjour", "", ""))
}
