package adapter

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/fansqz/cdp-snapshot-adapter/constants"
	e "github.com/fansqz/cdp-snapshot-adapter/error"
	"github.com/fansqz/cdp-snapshot-adapter/protocol"
	"github.com/fansqz/cdp-snapshot-adapter/snapshot"
	"github.com/fansqz/cdp-snapshot-adapter/utils"
)

var (
	recognizedSubtypes  = utils.List2set(constants.RecognizedSubtypes)
	typedArrayClassName = utils.List2set(constants.TypedArrayClassNames)
)

// isoDateFormat 严格的ISO-8601往返格式，捕获代理序列化Date用的就是这个形状
const isoDateFormat = "2006-01-02T15:04:05.000Z07:00"

// VariableResolver 把快照的扁平变量表解析成对象图
// 变量表用下标互相引用来表达可能带环/共享的对象图，解析分两趟：
// 第一趟为每个有值的条目构建描述符，第二趟在全部描述符就绪后构建属性列表。
// 第二趟依赖第一趟完整结束，因为成员的反向引用可以指向表中任意位置。
type VariableResolver struct {
	snapshotID  string
	table       []*snapshot.Variable
	store       *ObjectStore
	descriptors map[int]*protocol.RemoteObject
	// 第一趟分配的-object-标识，第二趟按它存属性列表
	objectIDs map[int]string
}

func NewVariableResolver(snapshotID string, table []*snapshot.Variable, store *ObjectStore) *VariableResolver {
	return &VariableResolver{
		snapshotID:  snapshotID,
		table:       table,
		store:       store,
		descriptors: map[int]*protocol.RemoteObject{},
		objectIDs:   map[int]string{},
	}
}

// Resolve 解析整个变量表，返回下标到描述符的映射
// 任何结构性违规都会让整个快照翻译失败，不存在部分解析的结果
func (r *VariableResolver) Resolve() (map[int]*protocol.RemoteObject, error) {
	logrus.Infof("[VariableResolver] Resolve snapshot %s, table size %d", r.snapshotID, len(r.table))
	if err := r.buildDescriptors(); err != nil {
		return nil, err
	}
	if err := r.buildPropertyLists(); err != nil {
		return nil, err
	}
	return r.descriptors, nil
}

// buildDescriptors 第一趟，为每个有原始值的条目构建描述符并分配对象标识
func (r *VariableResolver) buildDescriptors() error {
	for index, entry := range r.table {
		if entry.Value != nil && entry.VarTableIndex != nil {
			return e.NewDataShapeError("table entry %d has both a value and a back-reference", index)
		}
		if entry.Value == nil {
			// 没有值的条目是状态标记，记录后跳过
			classifyStatusVariable(entry)
			continue
		}
		descriptor, err := r.buildCompositeDescriptor(index, entry)
		if err != nil {
			return err
		}
		if len(entry.Members) > 0 {
			// 属性列表推迟到第二趟，那时全部描述符才可用
			descriptor.ObjectID = ObjectID(r.snapshotID, index)
			r.objectIDs[index] = descriptor.ObjectID
		} else if descriptor.ClassName == "Object" {
			// 普通Object且没有成员，直接记一个空属性表
			descriptor.ObjectID = EmptyObjectID(r.snapshotID, index)
			r.store.Put(descriptor.ObjectID, []*protocol.PropertyDescriptor{})
		} else {
			// 无成员的Date/Error等，第二趟补一个以原始值命名的单属性
			descriptor.ObjectID = ObjectID(r.snapshotID, index)
			r.objectIDs[index] = descriptor.ObjectID
		}
		r.descriptors[index] = descriptor
	}
	return nil
}

// buildCompositeDescriptor 识别变量表条目的复合形状
// 变量表的行只会是"#<ClassName>"包装、Error或者ISO日期，其他都是形状错误
func (r *VariableResolver) buildCompositeDescriptor(index int, entry *snapshot.Variable) (*protocol.RemoteObject, error) {
	value := *entry.Value
	if strings.HasPrefix(value, "#<") && strings.HasSuffix(value, ">") {
		className := value[2 : len(value)-1]
		descriptor := &protocol.RemoteObject{
			Type:        constants.TypeObject,
			ClassName:   className,
			Description: className,
		}
		lower := strings.ToLower(className)
		if recognizedSubtypes.Contains(lower) {
			descriptor.Subtype = constants.RemoteObjectSubtype(lower)
			if descriptor.Subtype == constants.SubtypeArray {
				// 数组必须带length成员，用它合成Array(n)描述
				length, ok := findMemberValue(entry.Members, "length")
				if !ok {
					return nil, e.NewDataShapeError("array entry %d has no length member", index)
				}
				descriptor.Description = fmt.Sprintf("Array(%s)", length)
			}
		} else if typedArrayClassName.Contains(className) {
			descriptor.Subtype = constants.SubtypeTypedarray
		}
		return descriptor, nil
	}
	if strings.HasPrefix(value, "Error") {
		// 错误对象的描述取自名为stack的成员
		stack, ok := findMemberValue(entry.Members, "stack")
		if !ok {
			return nil, e.NewDataShapeError("error entry %d has no stack member", index)
		}
		return &protocol.RemoteObject{
			Type:        constants.TypeObject,
			Subtype:     constants.SubtypeError,
			ClassName:   "Error",
			Description: stack,
		}, nil
	}
	if isStrictISODate(value) {
		return &protocol.RemoteObject{
			Type:        constants.TypeObject,
			Subtype:     constants.SubtypeDate,
			ClassName:   "Date",
			Description: value,
		}, nil
	}
	return nil, e.NewDataShapeError("table entry %d value %q is not a recognized composite shape", index, value)
}

// buildPropertyLists 第二趟，为第一趟分配了标识的条目构建属性列表
func (r *VariableResolver) buildPropertyLists() error {
	for index, entry := range r.table {
		objectID, ok := r.objectIDs[index]
		if !ok {
			continue
		}
		var properties []*protocol.PropertyDescriptor
		var err error
		if len(entry.Members) > 0 {
			properties, err = r.resolveMembers(entry.Members)
			if err != nil {
				return err
			}
		} else {
			// 没有成员时合成一个以原始值命名的单属性，指向条目自身的描述符
			properties = []*protocol.PropertyDescriptor{
				newPropertyDescriptor(*entry.Value, r.descriptors[index]),
			}
		}
		r.store.Put(objectID, properties)
	}
	return nil
}

// resolveMembers 按顺序解析成员列表
// 有原始值的成员走值解析，带反向引用的成员直接取第一趟的描述符。
// 栈帧locals的解析复用同一套规则。
func (r *VariableResolver) resolveMembers(members []*snapshot.Variable) ([]*protocol.PropertyDescriptor, error) {
	properties := make([]*protocol.PropertyDescriptor, 0, len(members))
	for _, member := range members {
		descriptor, err := r.resolveVariable(member)
		if err != nil {
			return nil, err
		}
		if descriptor == nil {
			continue
		}
		properties = append(properties, newPropertyDescriptor(member.Name, descriptor))
	}
	return properties, nil
}

// resolveVariable 解析单个变量，返回nil表示这是状态标记，不进属性列表
func (r *VariableResolver) resolveVariable(variable *snapshot.Variable) (*protocol.RemoteObject, error) {
	if variable.Value != nil && variable.VarTableIndex != nil {
		return nil, e.NewDataShapeError("variable %q has both a value and a back-reference", variable.Name)
	}
	if variable.Value != nil {
		return ParseValue(*variable.Value), nil
	}
	if variable.VarTableIndex != nil {
		index := *variable.VarTableIndex
		descriptor, ok := r.descriptors[index]
		if !ok {
			return nil, e.NewDataShapeError("variable %q references unresolvable table entry %d", variable.Name, index)
		}
		return descriptor, nil
	}
	classifyStatusVariable(variable)
	return nil, nil
}

// descriptorAt 第一趟解析出的某个下标的描述符
func (r *VariableResolver) descriptorAt(index int) (*protocol.RemoteObject, bool) {
	descriptor, ok := r.descriptors[index]
	return descriptor, ok
}

func newPropertyDescriptor(name string, value *protocol.RemoteObject) *protocol.PropertyDescriptor {
	return &protocol.PropertyDescriptor{
		Name:         name,
		Value:        value,
		Writable:     false,
		Configurable: true,
		Enumerable:   true,
	}
}

// findMemberValue 在成员列表中找指定名字的成员的原始值
func findMemberValue(members []*snapshot.Variable, name string) (string, bool) {
	for _, member := range members {
		if member.Name == name && member.Value != nil {
			return *member.Value, true
		}
	}
	return "", false
}

// isStrictISODate 严格的ISO-8601往返校验：解析后按同一格式重排，必须和输入完全相等
func isStrictISODate(value string) bool {
	parsed, err := time.Parse(isoDateFormat, value)
	if err != nil {
		return false
	}
	return parsed.Format(isoDateFormat) == value
}
