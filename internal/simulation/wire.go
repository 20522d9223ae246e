package simulation

import (
	"fmt"

	"github.com/Always-Flowting/FinalBoidSimulation/pkg/boid"
	"github.com/Always-Flowting/FinalBoidSimulation/pkg/config"
	"github.com/Always-Flowting/FinalBoidSimulation/pkg/flock"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/dynamicpb"
)

// Messages understood by FlockActor, in package flock.v1:
//
//	message Tick {}
//	message ToggleFreeze {}
//	message GetFrame {}
//	message Variables { double max_acceleration = 1; double max_velocity = 2;
//	                    double sense_distance = 3; double separation_distance = 4; double size = 5; }
//	message AddGroup { string name = 1; int32 amount = 2; string type = 3;
//	                   repeated float colour = 4; Variables variables = 5; }
//	message SetWeights { double separation = 1; double alignment = 2; double cohesion = 3;
//	                     double chase = 4; double flee = 5; }
//	message Status { bool ok = 1; string error = 2; }
//	message Frame { int32 amount = 1; bool changed = 2; bool frozen = 3;
//	                repeated float data = 4; uint64 ticks = 5; int32 agents = 6; }
const protoPackage = "flock.v1"

const (
	TickName         protoreflect.FullName = protoPackage + ".Tick"
	ToggleFreezeName protoreflect.FullName = protoPackage + ".ToggleFreeze"
	GetFrameName     protoreflect.FullName = protoPackage + ".GetFrame"
	VariablesName    protoreflect.FullName = protoPackage + ".Variables"
	AddGroupName     protoreflect.FullName = protoPackage + ".AddGroup"
	SetWeightsName   protoreflect.FullName = protoPackage + ".SetWeights"
	StatusName       protoreflect.FullName = protoPackage + ".Status"
	FrameName        protoreflect.FullName = protoPackage + ".Frame"
)

var messageTypes = map[protoreflect.FullName]protoreflect.MessageType{}

type fieldSpec struct {
	name     string
	kind     descriptorpb.FieldDescriptorProto_Type
	repeated bool
	typeName string // message fields only
}

func messageProto(name string, fields ...fieldSpec) *descriptorpb.DescriptorProto {
	m := &descriptorpb.DescriptorProto{Name: proto.String(name)}
	for i, f := range fields {
		label := descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL
		if f.repeated {
			label = descriptorpb.FieldDescriptorProto_LABEL_REPEATED
		}
		fd := &descriptorpb.FieldDescriptorProto{
			Name:   proto.String(f.name),
			Number: proto.Int32(int32(i + 1)),
			Label:  label.Enum(),
			Type:   f.kind.Enum(),
		}
		if f.typeName != "" {
			fd.TypeName = proto.String(f.typeName)
		}
		m.Field = append(m.Field, fd)
	}
	return m
}

func flockFileProto() *descriptorpb.FileDescriptorProto {
	const (
		double  = descriptorpb.FieldDescriptorProto_TYPE_DOUBLE
		float   = descriptorpb.FieldDescriptorProto_TYPE_FLOAT
		str     = descriptorpb.FieldDescriptorProto_TYPE_STRING
		i32     = descriptorpb.FieldDescriptorProto_TYPE_INT32
		u64     = descriptorpb.FieldDescriptorProto_TYPE_UINT64
		boolean = descriptorpb.FieldDescriptorProto_TYPE_BOOL
		msg     = descriptorpb.FieldDescriptorProto_TYPE_MESSAGE
	)
	return &descriptorpb.FileDescriptorProto{
		Name:    proto.String("flock/v1/flock.proto"),
		Package: proto.String(protoPackage),
		Syntax:  proto.String("proto3"),
		MessageType: []*descriptorpb.DescriptorProto{
			messageProto("Tick"),
			messageProto("ToggleFreeze"),
			messageProto("GetFrame"),
			messageProto("Variables",
				fieldSpec{name: "max_acceleration", kind: double},
				fieldSpec{name: "max_velocity", kind: double},
				fieldSpec{name: "sense_distance", kind: double},
				fieldSpec{name: "separation_distance", kind: double},
				fieldSpec{name: "size", kind: double},
			),
			messageProto("AddGroup",
				fieldSpec{name: "name", kind: str},
				fieldSpec{name: "amount", kind: i32},
				fieldSpec{name: "type", kind: str},
				fieldSpec{name: "colour", kind: float, repeated: true},
				fieldSpec{name: "variables", kind: msg, typeName: "." + string(VariablesName)},
			),
			messageProto("SetWeights",
				fieldSpec{name: "separation", kind: double},
				fieldSpec{name: "alignment", kind: double},
				fieldSpec{name: "cohesion", kind: double},
				fieldSpec{name: "chase", kind: double},
				fieldSpec{name: "flee", kind: double},
			),
			messageProto("Status",
				fieldSpec{name: "ok", kind: boolean},
				fieldSpec{name: "error", kind: str},
			),
			messageProto("Frame",
				fieldSpec{name: "amount", kind: i32},
				fieldSpec{name: "changed", kind: boolean},
				fieldSpec{name: "frozen", kind: boolean},
				fieldSpec{name: "data", kind: float, repeated: true},
				fieldSpec{name: "ticks", kind: u64},
				fieldSpec{name: "agents", kind: i32},
			),
		},
	}
}

func init() {
	fd, err := protodesc.NewFile(flockFileProto(), protoregistry.GlobalFiles)
	if err != nil {
		panic(fmt.Sprintf("flock.v1 descriptor: %v", err))
	}
	if err := protoregistry.GlobalFiles.RegisterFile(fd); err != nil {
		panic(fmt.Sprintf("flock.v1 register: %v", err))
	}
	msgs := fd.Messages()
	for i := 0; i < msgs.Len(); i++ {
		mt := dynamicpb.NewMessageType(msgs.Get(i))
		if err := protoregistry.GlobalTypes.RegisterMessage(mt); err != nil {
			panic(fmt.Sprintf("flock.v1 register %s: %v", mt.Descriptor().FullName(), err))
		}
		messageTypes[mt.Descriptor().FullName()] = mt
	}
}

func newMessage(name protoreflect.FullName) protoreflect.Message {
	return messageTypes[name].New()
}

// NameOf returns the full protobuf name of msg.
func NameOf(msg proto.Message) protoreflect.FullName {
	return msg.ProtoReflect().Descriptor().FullName()
}

func set(m protoreflect.Message, field protoreflect.Name, v protoreflect.Value) {
	m.Set(m.Descriptor().Fields().ByName(field), v)
}

func get(m protoreflect.Message, field protoreflect.Name) protoreflect.Value {
	return m.Get(m.Descriptor().Fields().ByName(field))
}

func NewTick() proto.Message         { return newMessage(TickName).Interface() }
func NewToggleFreeze() proto.Message { return newMessage(ToggleFreezeName).Interface() }
func NewGetFrame() proto.Message     { return newMessage(GetFrameName).Interface() }

// NewAddGroup encodes one configured group.
func NewAddGroup(g config.Group) proto.Message {
	vars := newMessage(VariablesName)
	set(vars, "max_acceleration", protoreflect.ValueOfFloat64(g.Variables.MaxAcceleration))
	set(vars, "max_velocity", protoreflect.ValueOfFloat64(g.Variables.MaxVelocity))
	set(vars, "sense_distance", protoreflect.ValueOfFloat64(g.Variables.SenseDistance))
	set(vars, "separation_distance", protoreflect.ValueOfFloat64(g.Variables.SeparationDistance))
	set(vars, "size", protoreflect.ValueOfFloat64(g.Variables.Size))

	m := newMessage(AddGroupName)
	set(m, "name", protoreflect.ValueOfString(g.Name))
	set(m, "amount", protoreflect.ValueOfInt32(int32(g.Amount)))
	set(m, "type", protoreflect.ValueOfString(g.Type.String()))
	colour := m.Mutable(m.Descriptor().Fields().ByName("colour")).List()
	for _, c := range g.Colour {
		colour.Append(protoreflect.ValueOfFloat32(c))
	}
	set(m, "variables", protoreflect.ValueOfMessage(vars))
	return m.Interface()
}

// DecodeAddGroup is the inverse of NewAddGroup. The type name is parsed
// but not otherwise validated; AddGroup does that.
func DecodeAddGroup(msg proto.Message) (config.Group, error) {
	m := msg.ProtoReflect()
	if m.Descriptor().FullName() != AddGroupName {
		return config.Group{}, fmt.Errorf("expected %s, got %s", AddGroupName, m.Descriptor().FullName())
	}
	t, err := boid.ParseType(get(m, "type").String())
	if err != nil {
		return config.Group{}, err
	}
	g := config.Group{
		Name:   get(m, "name").String(),
		Amount: int(get(m, "amount").Int()),
		Type:   t,
	}
	colour := get(m, "colour").List()
	if colour.Len() != len(g.Colour) {
		return config.Group{}, fmt.Errorf("colour needs %d channels, got %d", len(g.Colour), colour.Len())
	}
	for i := range g.Colour {
		g.Colour[i] = float32(colour.Get(i).Float())
	}
	vars := get(m, "variables").Message()
	g.Variables = boid.Variables{
		MaxAcceleration:    get(vars, "max_acceleration").Float(),
		MaxVelocity:        get(vars, "max_velocity").Float(),
		SenseDistance:      get(vars, "sense_distance").Float(),
		SeparationDistance: get(vars, "separation_distance").Float(),
		Size:               get(vars, "size").Float(),
	}
	return g, nil
}

func NewSetWeights(w flock.Weights) proto.Message {
	m := newMessage(SetWeightsName)
	set(m, "separation", protoreflect.ValueOfFloat64(w.Separation))
	set(m, "alignment", protoreflect.ValueOfFloat64(w.Alignment))
	set(m, "cohesion", protoreflect.ValueOfFloat64(w.Cohesion))
	set(m, "chase", protoreflect.ValueOfFloat64(w.Chase))
	set(m, "flee", protoreflect.ValueOfFloat64(w.Flee))
	return m.Interface()
}

func decodeWeights(m protoreflect.Message) flock.Weights {
	return flock.Weights{
		Separation: get(m, "separation").Float(),
		Alignment:  get(m, "alignment").Float(),
		Cohesion:   get(m, "cohesion").Float(),
		Chase:      get(m, "chase").Float(),
		Flee:       get(m, "flee").Float(),
	}
}

func newStatus(err error) proto.Message {
	m := newMessage(StatusName)
	set(m, "ok", protoreflect.ValueOfBool(err == nil))
	if err != nil {
		set(m, "error", protoreflect.ValueOfString(err.Error()))
	}
	return m.Interface()
}

// StatusError turns a Status reply back into an error, nil when ok.
func StatusError(msg proto.Message) error {
	m := msg.ProtoReflect()
	if m.Descriptor().FullName() != StatusName {
		return fmt.Errorf("expected %s, got %s", StatusName, m.Descriptor().FullName())
	}
	if get(m, "ok").Bool() {
		return nil
	}
	return fmt.Errorf("flock actor: %s", get(m, "error").String())
}

// Frame is a decoded Frame reply. Data is owned by the receiver.
type Frame struct {
	Amount  int
	Changed bool
	Frozen  bool
	Ticks   uint64
	Agents  int
	Data    []float32
}

// Record decodes render record i of the frame.
func (f Frame) Record(i int) flock.Record { return flock.DecodeRecord(f.Data, i) }

func newFrame(f *flock.Flock, state flock.State, changed bool) proto.Message {
	m := newMessage(FrameName)
	set(m, "amount", protoreflect.ValueOfInt32(int32(f.Amount())))
	set(m, "changed", protoreflect.ValueOfBool(changed))
	set(m, "frozen", protoreflect.ValueOfBool(!state.Simulating()))
	set(m, "ticks", protoreflect.ValueOfUint64(f.Ticks()))
	set(m, "agents", protoreflect.ValueOfInt32(int32(f.Len())))
	data := m.Mutable(m.Descriptor().Fields().ByName("data")).List()
	for _, v := range f.Data() {
		data.Append(protoreflect.ValueOfFloat32(v))
	}
	return m.Interface()
}

// DecodeFrame copies a Frame reply into a Frame.
func DecodeFrame(msg proto.Message) (Frame, error) {
	m := msg.ProtoReflect()
	if m.Descriptor().FullName() != FrameName {
		return Frame{}, fmt.Errorf("expected %s, got %s", FrameName, m.Descriptor().FullName())
	}
	fr := Frame{
		Amount:  int(get(m, "amount").Int()),
		Changed: get(m, "changed").Bool(),
		Frozen:  get(m, "frozen").Bool(),
		Ticks:   get(m, "ticks").Uint(),
		Agents:  int(get(m, "agents").Int()),
	}
	data := get(m, "data").List()
	fr.Data = make([]float32, data.Len())
	for i := range fr.Data {
		fr.Data[i] = float32(data.Get(i).Float())
	}
	if fr.Amount*flock.Stride != len(fr.Data) {
		return Frame{}, fmt.Errorf("frame carries %d floats for %d records", len(fr.Data), fr.Amount)
	}
	return fr, nil
}
