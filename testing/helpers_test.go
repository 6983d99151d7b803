package testing

import (
	"reflect"
	"testing"

	"github.com/zoobzio/missive"
	"github.com/zoobzio/missive/json"
)

func TestRegisterFixtures(t *testing.T) {
	RegisterFixtures(t)

	got, ok := missive.DefaultRegistry().Lookup(Namespace + ".Order")
	if !ok || got != reflect.TypeFor[Order]() {
		t.Errorf("Lookup(Order) = %v, %v", got, ok)
	}
	if id := missive.DefaultRegistry().ID(reflect.TypeFor[LineItem]()); id != Namespace+".LineItem" {
		t.Errorf("ID(LineItem) = %q", id)
	}
}

func TestRoundTrip(t *testing.T) {
	c := NewCodec(t, json.New())

	msg, got := RoundTrip(t, c, SampleOrder())
	if id, _ := msg.Properties.Header(missive.TypeIDHeader); id != Namespace+".Order" {
		t.Errorf("TypeIDHeader = %q", id)
	}
	if !reflect.DeepEqual(got, SampleOrder()) {
		t.Errorf("RoundTrip() = %#v", got)
	}
}
