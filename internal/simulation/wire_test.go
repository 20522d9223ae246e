package simulation

import (
	"strings"
	"testing"

	"github.com/Always-Flowting/FinalBoidSimulation/pkg/boid"
	"github.com/Always-Flowting/FinalBoidSimulation/pkg/config"
	"github.com/Always-Flowting/FinalBoidSimulation/pkg/flock"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
)

func TestMessagesRegistered(t *testing.T) {
	for _, name := range []string{"Tick", "ToggleFreeze", "GetFrame", "Variables", "AddGroup", "SetWeights", "Status", "Frame"} {
		if _, err := protoregistry.GlobalTypes.FindMessageByName(protoreflect.FullName(protoPackage + "." + name)); err != nil {
			t.Errorf("flock.v1.%s not registered: %v", name, err)
		}
	}
	if NameOf(NewTick()) != TickName {
		t.Errorf("NameOf(NewTick()) = %s", NameOf(NewTick()))
	}
}

func TestAddGroup_Encoding(t *testing.T) {
	g := config.Group{
		Name:   "hawks",
		Amount: 3,
		Type:   boid.Predator,
		Colour: [3]float32{1, 0.5, 0},
		Variables: boid.Variables{
			MaxAcceleration:    0.5,
			MaxVelocity:        4,
			SenseDistance:      90,
			SeparationDistance: 25,
			Size:               6,
		},
	}
	got, err := DecodeAddGroup(NewAddGroup(g))
	if err != nil {
		t.Fatalf("DecodeAddGroup: %v", err)
	}
	if got != g {
		t.Errorf("DecodeAddGroup = %+v; want %+v", got, g)
	}

	// Survives the binary wire format too.
	b, err := proto.Marshal(NewAddGroup(g))
	if err != nil {
		t.Fatal(err)
	}
	mt, _ := protoregistry.GlobalTypes.FindMessageByName(AddGroupName)
	msg := mt.New().Interface()
	if err := proto.Unmarshal(b, msg); err != nil {
		t.Fatal(err)
	}
	if got, err := DecodeAddGroup(msg); err != nil || got != g {
		t.Errorf("after wire round trip: %+v, %v", got, err)
	}

	if _, err := DecodeAddGroup(NewTick()); err == nil {
		t.Error("DecodeAddGroup(Tick) should fail")
	}
}

func TestFrame_CopiesBuffer(t *testing.T) {
	f, err := flock.New(200, 200, flock.WithRandom(boid.NewSeededAngles(5)))
	if err != nil {
		t.Fatal(err)
	}
	vars := boid.Variables{MaxAcceleration: 1, MaxVelocity: 2, SenseDistance: 20, SeparationDistance: 5, Size: 2}
	if err := f.AddGroup(4, boid.Prey, flock.Colour{R: 1}, vars); err != nil {
		t.Fatal(err)
	}
	f.ResizeData()

	fr, err := DecodeFrame(newFrame(f, flock.Frozen, false))
	if err != nil {
		t.Fatalf("DecodeFrame: %v", err)
	}
	if fr.Amount != 4 || fr.Agents != 4 || !fr.Frozen || fr.Changed {
		t.Errorf("frame header = %+v", fr)
	}
	if len(fr.Data) != 4*flock.Stride {
		t.Fatalf("len(Data) = %d", len(fr.Data))
	}
	for i := range fr.Data {
		if fr.Data[i] != f.Data()[i] {
			t.Fatalf("Data[%d] = %v; want %v", i, fr.Data[i], f.Data()[i])
		}
	}

	before := fr.Record(0)
	f.Run()
	if fr.Record(0) != before {
		t.Error("frame data must not alias the live buffer")
	}
}

func TestStatusError(t *testing.T) {
	if err := StatusError(newStatus(nil)); err != nil {
		t.Errorf("ok status = %v", err)
	}
	err := StatusError(newStatus(flock.ErrInvalidGroup))
	if err == nil || !strings.Contains(err.Error(), flock.ErrInvalidGroup.Error()) {
		t.Errorf("failed status = %v", err)
	}
	if StatusError(NewTick()) == nil {
		t.Error("StatusError(Tick) should fail")
	}
}
