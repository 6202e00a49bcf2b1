package domain

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
)

func TestServiceChannel_UnmarshalJSON_PicksVariant(t *testing.T) {
	t.Parallel()

	orgID := uuid.New()
	raw := `{
		"channelType": "ServiceLocation",
		"organizationId": "` + orgID.String() + `",
		"serviceChannelNames": [{"language": "fi", "type": "Name", "value": "Toimipiste"}],
		"addresses": [{"type": "Location", "subType": "Single", "country": "FI"}],
		"publishingStatus": "Published"
	}`

	var ch ServiceChannel
	if err := json.Unmarshal([]byte(raw), &ch); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ch.OrganizationID != orgID {
		t.Errorf("organization: got %v, want %v", ch.OrganizationID, orgID)
	}
	if ch.PublishingStatus != PublishingStatusPublished {
		t.Errorf("status: got %q", ch.PublishingStatus)
	}
	loc, ok := ch.Details.(*ServiceLocationDetails)
	if !ok {
		t.Fatalf("details: got %T, want *ServiceLocationDetails", ch.Details)
	}
	if len(loc.Addresses) != 1 || loc.Addresses[0].SubType != AddressSubTypeSingle {
		t.Errorf("addresses: got %+v", loc.Addresses)
	}
	if ch.Kind() != ChannelKindServiceLocation {
		t.Errorf("kind: got %q", ch.Kind())
	}
}

func TestServiceChannel_UnmarshalJSON_UnknownType(t *testing.T) {
	t.Parallel()

	var ch ServiceChannel
	if err := json.Unmarshal([]byte(`{"channelType": "Carrier pigeon"}`), &ch); err == nil {
		t.Fatal("expected error for unknown channel type")
	}
}

func TestServiceChannel_MarshalJSON_FlattensDetails(t *testing.T) {
	t.Parallel()

	in := ServiceChannel{
		OrganizationID: uuid.New(),
		Details: &PhoneDetails{PhoneNumbers: []Phone{
			{Language: "fi", PrefixNumber: "+358", Number: "401234567"},
		}},
	}

	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var out ServiceChannel
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	phone, ok := out.Details.(*PhoneDetails)
	if !ok {
		t.Fatalf("details: got %T", out.Details)
	}
	if len(phone.PhoneNumbers) != 1 || phone.PhoneNumbers[0].Number != "401234567" {
		t.Errorf("phones: got %+v", phone.PhoneNumbers)
	}
}

func TestCaller_OwnsOrganization(t *testing.T) {
	t.Parallel()

	own := uuid.New()
	c := Caller{Role: UserRoleUser, Organizations: []uuid.UUID{own}}
	if !c.OwnsOrganization(own) {
		t.Error("caller should own its organization")
	}
	if c.OwnsOrganization(uuid.New()) {
		t.Error("caller should not own a foreign organization")
	}
	if c.IsAdmin() {
		t.Error("user role is not admin")
	}
}
