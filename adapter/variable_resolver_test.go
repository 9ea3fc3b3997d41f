package adapter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fansqz/cdp-snapshot-adapter/constants"
	e "github.com/fansqz/cdp-snapshot-adapter/error"
	"github.com/fansqz/cdp-snapshot-adapter/snapshot"
	"github.com/fansqz/cdp-snapshot-adapter/utils"
)

func TestResolveArrayEntry(t *testing.T) {
	store := NewObjectStore()
	table := []*snapshot.Variable{
		{
			Value: utils.GetPointValue("#<Array>"),
			Members: []*snapshot.Variable{
				{Name: "0", Value: utils.GetPointValue("1")},
				{Name: "1", Value: utils.GetPointValue("2")},
				{Name: "2", Value: utils.GetPointValue("3")},
				{Name: "length", Value: utils.GetPointValue("3")},
			},
		},
	}
	descriptors, err := NewVariableResolver("snap-1", table, store).Resolve()
	assert.Nil(t, err)
	assert.Equal(t, constants.SubtypeArray, descriptors[0].Subtype)
	assert.Equal(t, "Array", descriptors[0].ClassName)
	assert.Equal(t, "Array(3)", descriptors[0].Description)
	assert.Equal(t, "snap-1-object-0", descriptors[0].ObjectID)

	// 属性列表顺序和成员顺序一致
	properties, err := store.Get("snap-1-object-0")
	assert.Nil(t, err)
	assert.Equal(t, 4, len(properties))
	assert.Equal(t, "0", properties[0].Name)
	assert.Equal(t, "length", properties[3].Name)
	assert.Equal(t, constants.TypeNumber, properties[0].Value.Type)
}

func TestResolveArrayWithoutLength(t *testing.T) {
	// 数组条目缺少length成员是致命的数据形状错误
	store := NewObjectStore()
	table := []*snapshot.Variable{
		{Value: utils.GetPointValue("#<Array>"), Members: []*snapshot.Variable{
			{Name: "0", Value: utils.GetPointValue("1")},
		}},
	}
	_, err := NewVariableResolver("snap-1", table, store).Resolve()
	assert.True(t, e.IsDataShapeError(err))
}

func TestResolveErrorEntry(t *testing.T) {
	store := NewObjectStore()
	table := []*snapshot.Variable{
		{Value: utils.GetPointValue("Error: boom"), Members: []*snapshot.Variable{
			{Name: "stack", Value: utils.GetPointValue("Error: boom\n    at main.js:3:1")},
		}},
	}
	descriptors, err := NewVariableResolver("snap-1", table, store).Resolve()
	assert.Nil(t, err)
	assert.Equal(t, constants.SubtypeError, descriptors[0].Subtype)
	assert.Equal(t, "Error", descriptors[0].ClassName)
	assert.Equal(t, "Error: boom\n    at main.js:3:1", descriptors[0].Description)
}

func TestResolveErrorWithoutStack(t *testing.T) {
	store := NewObjectStore()
	table := []*snapshot.Variable{
		{Value: utils.GetPointValue("Error: boom")},
	}
	_, err := NewVariableResolver("snap-1", table, store).Resolve()
	assert.True(t, e.IsDataShapeError(err))
}

func TestResolveDateEntry(t *testing.T) {
	store := NewObjectStore()
	table := []*snapshot.Variable{
		{Value: utils.GetPointValue("2024-05-01T12:30:00.000Z")},
	}
	descriptors, err := NewVariableResolver("snap-1", table, store).Resolve()
	assert.Nil(t, err)
	assert.Equal(t, constants.SubtypeDate, descriptors[0].Subtype)
	assert.Equal(t, "Date", descriptors[0].ClassName)

	// 没有成员的Date，第二趟补一个以原始值命名的单属性
	properties, err := store.Get("snap-1-object-0")
	assert.Nil(t, err)
	assert.Equal(t, 1, len(properties))
	assert.Equal(t, "2024-05-01T12:30:00.000Z", properties[0].Name)
	assert.Equal(t, descriptors[0], properties[0].Value)
}

func TestResolveEmptyObjectEntry(t *testing.T) {
	// 无成员的普通Object直接得到-empty-标识和空属性表
	store := NewObjectStore()
	table := []*snapshot.Variable{
		{Value: utils.GetPointValue("#<Object>")},
	}
	descriptors, err := NewVariableResolver("snap-1", table, store).Resolve()
	assert.Nil(t, err)
	assert.Equal(t, "snap-1-empty-0", descriptors[0].ObjectID)
	properties, err := store.Get("snap-1-empty-0")
	assert.Nil(t, err)
	assert.Equal(t, 0, len(properties))
}

func TestResolveTypedArrayClassName(t *testing.T) {
	store := NewObjectStore()
	table := []*snapshot.Variable{
		{Value: utils.GetPointValue("#<Uint8Array>"), Members: []*snapshot.Variable{
			{Name: "length", Value: utils.GetPointValue("4")},
		}},
	}
	descriptors, err := NewVariableResolver("snap-1", table, store).Resolve()
	assert.Nil(t, err)
	assert.Equal(t, "Uint8Array", descriptors[0].ClassName)
	assert.Equal(t, constants.SubtypeTypedarray, descriptors[0].Subtype)
}

func TestResolveBackReferenceMember(t *testing.T) {
	// 成员带反向引用时，直接指向第一趟在那个下标上构建的描述符
	store := NewObjectStore()
	table := []*snapshot.Variable{
		{Value: utils.GetPointValue("#<Object>"), Members: []*snapshot.Variable{
			{Name: "child", VarTableIndex: utils.GetPointValue(1)},
		}},
		{Value: utils.GetPointValue("#<Map>"), Members: []*snapshot.Variable{
			{Name: "size", Value: utils.GetPointValue("0")},
		}},
	}
	descriptors, err := NewVariableResolver("snap-2", table, store).Resolve()
	assert.Nil(t, err)
	properties, err := store.Get("snap-2-object-0")
	assert.Nil(t, err)
	assert.Equal(t, 1, len(properties))
	assert.Equal(t, "child", properties[0].Name)
	assert.Equal(t, descriptors[1], properties[0].Value)
	assert.Equal(t, constants.SubtypeMap, descriptors[1].Subtype)
}

func TestResolveValueAndReferenceCollision(t *testing.T) {
	store := NewObjectStore()
	table := []*snapshot.Variable{
		{Value: utils.GetPointValue("#<Object>"), VarTableIndex: utils.GetPointValue(0)},
	}
	_, err := NewVariableResolver("snap-1", table, store).Resolve()
	assert.True(t, e.IsDataShapeError(err))
}

func TestResolveUnrecognizedShape(t *testing.T) {
	store := NewObjectStore()
	table := []*snapshot.Variable{
		{Value: utils.GetPointValue("just a plain string")},
	}
	_, err := NewVariableResolver("snap-1", table, store).Resolve()
	assert.True(t, e.IsDataShapeError(err))
}

func TestResolveStatusEntriesSkipped(t *testing.T) {
	// 没有值的条目是状态标记，不报错也不产生描述符
	store := NewObjectStore()
	table := []*snapshot.Variable{
		{Name: "__proto__"},
		{Name: "weird", Status: &snapshot.StatusMessage{IsError: true, Description: "capture failed"}},
		{Value: utils.GetPointValue("#<Object>")},
	}
	descriptors, err := NewVariableResolver("snap-1", table, store).Resolve()
	assert.Nil(t, err)
	assert.Equal(t, 1, len(descriptors))
	assert.NotNil(t, descriptors[2])
}
