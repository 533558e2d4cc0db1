package repositories

import "testing"

func TestFeaturesCodec(t *testing.T) {
	features := map[string]bool{"refrigerator": true, "hydroboard": false}

	raw := marshalFeatures(features)
	if raw == nil {
		t.Fatal("marshalFeatures returned nil for non-empty map")
	}

	got := unmarshalFeatures(raw)
	if len(got) != 2 || !got["refrigerator"] || got["hydroboard"] {
		t.Errorf("round trip = %v, want %v", got, features)
	}
}

func TestMarshalFeaturesEmpty(t *testing.T) {
	if raw := marshalFeatures(nil); raw != nil {
		t.Errorf("marshalFeatures(nil) = %v, want nil", *raw)
	}
	if raw := marshalFeatures(map[string]bool{}); raw != nil {
		t.Errorf("marshalFeatures(empty) = %v, want nil", *raw)
	}
}

func TestUnmarshalFeaturesMalformed(t *testing.T) {
	junk := "{not json"
	got := unmarshalFeatures(&junk)
	if got == nil || len(got) != 0 {
		t.Errorf("malformed payload = %v, want empty map", got)
	}

	if got := unmarshalFeatures(nil); got == nil || len(got) != 0 {
		t.Errorf("nil payload = %v, want empty map", got)
	}

	empty := ""
	if got := unmarshalFeatures(&empty); got == nil || len(got) != 0 {
		t.Errorf("empty payload = %v, want empty map", got)
	}
}
