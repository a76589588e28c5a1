package catalog

import (
	"errors"
	"fmt"
	"reflect"

	"failmsg/pkg/diff"
	"failmsg/pkg/errx"
	"failmsg/pkg/message"
	"failmsg/pkg/represent"
)

// Condition names.
const (
	NameShouldBeEqual                = "should-be-equal"
	NameShouldNotBeEqual             = "should-not-be-equal"
	NameShouldBeNil                  = "should-be-nil"
	NameShouldNotBeNil               = "should-not-be-nil"
	NameShouldBeTrue                 = "should-be-true"
	NameShouldBeFalse                = "should-be-false"
	NameShouldBeEmpty                = "should-be-empty"
	NameShouldNotBeEmpty             = "should-not-be-empty"
	NameShouldHaveLength             = "should-have-length"
	NameShouldHaveSameSize           = "should-have-same-size"
	NameShouldContain                = "should-contain"
	NameShouldContainString          = "should-contain-string"
	NameShouldContainIgnoringCase    = "should-contain-ignoring-case"
	NameShouldNotContain             = "should-not-contain"
	NameShouldContainExactly         = "should-contain-exactly"
	NameShouldContainExactlyInOrder  = "should-contain-exactly-in-order"
	NameShouldContainKey             = "should-contain-key"
	NameShouldStartWith              = "should-start-with"
	NameShouldEndWith                = "should-end-with"
	NameShouldMatchPattern           = "should-match-pattern"
	NameShouldBeGreater              = "should-be-greater"
	NameShouldBeLess                 = "should-be-less"
	NameShouldBeBetween              = "should-be-between"
	NameShouldBeSorted               = "should-be-sorted"
	NameShouldBeOfType               = "should-be-of-type"
	NameShouldHaveCause              = "should-have-cause"
	NameShouldHaveCauseMissing       = "should-have-cause-missing"
	NameShouldContainErrorMessage    = "should-contain-error-message"
	NameShouldHaveParameter          = "should-have-parameter"
	NameShouldHaveParameterWithValue = "should-have-parameter-with-value"
	NameShouldHaveNoParameters       = "should-have-no-parameters"
	NameShouldHaveSameContent        = "should-have-same-content"
)

const (
	tmplShouldBeEqual               = "%nexpected: %s%n but was: %s"
	tmplShouldNotBeEqual            = "%nExpecting actual:%n  %s%nnot to be equal to:%n  %s"
	tmplShouldBeNil                 = "%nExpecting actual:%n  %s%nto be nil"
	tmplShouldNotBeNil              = "%nExpecting actual not to be nil"
	tmplShouldBeTrue                = "%nExpecting value to be true but was false"
	tmplShouldBeFalse               = "%nExpecting value to be false but was true"
	tmplShouldBeEmpty               = "%nExpecting empty but was: %s"
	tmplShouldNotBeEmpty            = "%nExpecting actual not to be empty"
	tmplShouldHaveLength            = "%nExpected length: %s but was: %s in:%n  %s"
	tmplShouldHaveSameSize          = "%nActual and expected should have same size but actual size was:%n  %s%nwhile expected size was:%n  %s%nActual was:%n  %s%nExpected was:%n  %s"
	tmplShouldContain               = "%nExpecting actual:%n  %s%nto contain:%n  %s%nbut could not find the following element(s):%n  %s"
	tmplShouldContainString         = "%nExpecting actual:%n  %s%nto contain:%n  %s"
	tmplShouldContainIgnoringCase   = "%nExpecting actual:%n  %s%nto contain:%n  %s%n (ignoring case)"
	tmplShouldNotContain            = "%nExpecting actual:%n  %s%nnot to contain:%n  %s%nbut found:%n  %s"
	tmplShouldContainExactly        = "%nExpecting actual:%n  %s%nto contain exactly (and in same order):%n  %s%nbut some elements were not found:%n  %s%nand others were not expected:%n  %s"
	tmplShouldContainExactlyInOrder = "%nActual and expected have the same elements but not in the same order, at index %s actual element was:%n  %s%nwhereas expected element was:%n  %s"
	tmplShouldContainKey            = "%nExpecting actual:%n  %s%nto contain key:%n  %s"
	tmplShouldStartWith             = "%nExpecting actual:%n  %s%nto start with:%n  %s"
	tmplShouldEndWith               = "%nExpecting actual:%n  %s%nto end with:%n  %s"
	tmplShouldMatchPattern          = "%nExpecting actual:%n  %s%nto match pattern:%n  %s"
	tmplShouldBeGreater             = "%nExpecting actual:%n  %s%nto be greater than:%n  %s"
	tmplShouldBeLess                = "%nExpecting actual:%n  %s%nto be less than:%n  %s"
	tmplShouldBeBetween             = "%nExpecting actual:%n  %s%nto be between:%n  [%s, %s]"
	tmplShouldBeSorted              = "%nsequence is not sorted because element %s:%n  %s%nis not less or equal than element %s:%n  %s%nsequence was:%n  %s"
	tmplShouldBeOfType              = "%nExpecting actual:%n  %s%nto be of type:%n  %s%nbut was of type:%n  %s"
	tmplShouldHaveCause             = "%nExpecting a cause:%n  %s%nbut actual's cause was:%n  %s"
	tmplShouldHaveCauseMissing      = "%nExpecting actual error to have a cause but it did not, actual error was:%n  %s"
	tmplShouldContainErrorMessage   = "%nExpecting error message:%n  %s%nto contain:%n  %s%nbut did not."
	tmplShouldHaveParameter         = "%nExpecting actual:%n  <%s>%nto have parameter:%n  <%s>%nbut was missing"
	tmplShouldHaveParameterValue    = "%nExpecting actual:%n  <%s>%nto have parameter:%n  <%s>%nwith value:%n  <%s>%nbut parameter was missing"
	tmplShouldHaveNoParameters      = "%nExpecting actual:%n  <%s>%nnot to have any parameters but found:%n  <%s>"
	tmplShouldHaveSameContent       = "%nExpecting:%n  %s%nto have the same content as:%n  %s%nbut had differences:%n"
)

var builtinConditions = []struct {
	name     string
	template message.Template
}{
	{NameShouldBeEqual, tmplShouldBeEqual},
	{NameShouldNotBeEqual, tmplShouldNotBeEqual},
	{NameShouldBeNil, tmplShouldBeNil},
	{NameShouldNotBeNil, tmplShouldNotBeNil},
	{NameShouldBeTrue, tmplShouldBeTrue},
	{NameShouldBeFalse, tmplShouldBeFalse},
	{NameShouldBeEmpty, tmplShouldBeEmpty},
	{NameShouldNotBeEmpty, tmplShouldNotBeEmpty},
	{NameShouldHaveLength, tmplShouldHaveLength},
	{NameShouldHaveSameSize, tmplShouldHaveSameSize},
	{NameShouldContain, tmplShouldContain},
	{NameShouldContainString, tmplShouldContainString},
	{NameShouldContainIgnoringCase, tmplShouldContainIgnoringCase},
	{NameShouldNotContain, tmplShouldNotContain},
	{NameShouldContainExactly, tmplShouldContainExactly},
	{NameShouldContainExactlyInOrder, tmplShouldContainExactlyInOrder},
	{NameShouldContainKey, tmplShouldContainKey},
	{NameShouldStartWith, tmplShouldStartWith},
	{NameShouldEndWith, tmplShouldEndWith},
	{NameShouldMatchPattern, tmplShouldMatchPattern},
	{NameShouldBeGreater, tmplShouldBeGreater},
	{NameShouldBeLess, tmplShouldBeLess},
	{NameShouldBeBetween, tmplShouldBeBetween},
	{NameShouldBeSorted, tmplShouldBeSorted},
	{NameShouldBeOfType, tmplShouldBeOfType},
	{NameShouldHaveCause, tmplShouldHaveCause},
	{NameShouldHaveCauseMissing, tmplShouldHaveCauseMissing},
	{NameShouldContainErrorMessage, tmplShouldContainErrorMessage},
	{NameShouldHaveParameter, tmplShouldHaveParameter},
	{NameShouldHaveParameterWithValue, tmplShouldHaveParameterValue},
	{NameShouldHaveNoParameters, tmplShouldHaveNoParameters},
	{NameShouldHaveSameContent, tmplShouldHaveSameContent},
}

// ShouldBeEqual reports that actual differs from expected. Composite values
// carry a structural diff as diagnostic tail.
func ShouldBeEqual(actual, expected any) Factory {
	f := bind(NameShouldBeEqual, expected, actual)
	if isComposite(actual) && isComposite(expected) {
		f = f.WithDiff(diff.Tail(diff.Values(expected, actual)))
	}
	return f
}

func ShouldNotBeEqual(actual, other any) Factory {
	return bind(NameShouldNotBeEqual, actual, other)
}

func ShouldBeNil(actual any) Factory {
	return bind(NameShouldBeNil, actual)
}

func ShouldNotBeNil() Factory {
	return bind(NameShouldNotBeNil)
}

func ShouldBeTrue() Factory {
	return bind(NameShouldBeTrue)
}

func ShouldBeFalse() Factory {
	return bind(NameShouldBeFalse)
}

func ShouldBeEmpty(actual any) Factory {
	return bind(NameShouldBeEmpty, actual)
}

func ShouldNotBeEmpty() Factory {
	return bind(NameShouldNotBeEmpty)
}

func ShouldHaveLength(actual any, actualLength, expectedLength int) Factory {
	return bind(NameShouldHaveLength, expectedLength, actualLength, actual)
}

func ShouldHaveSameSize(actual, expected any, actualSize, expectedSize int) Factory {
	return bind(NameShouldHaveSameSize, actualSize, expectedSize, actual, expected)
}

// ShouldContain reports the values of a group that actual does not contain.
func ShouldContain(actual, values, notFound any) Factory {
	return bind(NameShouldContain, actual, values, notFound)
}

func ShouldContainString(actual, sequence string) Factory {
	return bind(NameShouldContainString, actual, sequence)
}

func ShouldContainIgnoringCase(actual, sequence string) Factory {
	return bind(NameShouldContainIgnoringCase, actual, sequence)
}

func ShouldNotContain(actual, values, found any) Factory {
	return bind(NameShouldNotContain, actual, values, found)
}

func ShouldContainExactly(actual, expected, notFound, notExpected any) Factory {
	return bind(NameShouldContainExactly, actual, expected, notFound, notExpected)
}

// ShouldContainExactlyInOrder reports the first index at which actual and
// expected, holding the same elements, disagree.
func ShouldContainExactlyInOrder(index int, actualElement, expectedElement any) Factory {
	return bind(NameShouldContainExactlyInOrder, index, actualElement, expectedElement)
}

func ShouldContainKey(actual, key any) Factory {
	return bind(NameShouldContainKey, actual, key)
}

func ShouldStartWith(actual, prefix any) Factory {
	return bind(NameShouldStartWith, actual, prefix)
}

func ShouldEndWith(actual, suffix any) Factory {
	return bind(NameShouldEndWith, actual, suffix)
}

func ShouldMatchPattern(actual, pattern string) Factory {
	return bind(NameShouldMatchPattern, actual, pattern)
}

func ShouldBeGreater(actual, other any) Factory {
	return bind(NameShouldBeGreater, actual, other)
}

func ShouldBeLess(actual, other any) Factory {
	return bind(NameShouldBeLess, actual, other)
}

func ShouldBeBetween(actual, start, end any) Factory {
	return bind(NameShouldBeBetween, actual, start, end)
}

// ShouldBeSorted reports that the element at index of the slice or array
// actual is greater than its successor.
func ShouldBeSorted(actual any, index int) Factory {
	v := reflect.ValueOf(actual)
	if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
		return Factory{condition: NameShouldBeSorted, err: errx.Catalog(fmt.Sprintf("%s needs a slice or array, got %T", NameShouldBeSorted, actual)).
			WithContext("condition", NameShouldBeSorted)}
	}
	if index < 0 || index+1 >= v.Len() {
		return Factory{condition: NameShouldBeSorted, err: errx.Catalog(fmt.Sprintf("%s index %d out of range for length %d", NameShouldBeSorted, index, v.Len())).
			WithContext("condition", NameShouldBeSorted).
			WithContext("index", index)}
	}
	return bind(NameShouldBeSorted, index, v.Index(index).Interface(), index+1, v.Index(index+1).Interface(), actual)
}

// ShouldBeOfType reports that actual's dynamic type is not expected.
func ShouldBeOfType(actual any, expected reflect.Type) Factory {
	return bind(NameShouldBeOfType, actual, typeName(expected), typeName(reflect.TypeOf(actual)))
}

// ShouldHaveCause reports a problem with actual's cause. With None, actual
// has no cause at all; with Some(expected), its cause differs from expected.
func ShouldHaveCause(actual error, expected Detail) Factory {
	if !expected.Present() {
		return bind(NameShouldHaveCauseMissing, actual)
	}
	return bind(NameShouldHaveCause, expected.Value(), errors.Unwrap(actual))
}

// ShouldContainErrorMessage reports that actual's message lacks sequence. The
// error's verbose form is attached verbatim as diagnostic tail.
func ShouldContainErrorMessage(actual error, sequence string) Factory {
	if actual == nil {
		return bind(NameShouldContainErrorMessage, nil, sequence)
	}
	return bind(NameShouldContainErrorMessage, actual.Error(), sequence).
		WithDiff(fmt.Sprintf("\n\nError that failed the check:\n\n%+v", actual))
}

// ShouldHaveParameter reports a missing query parameter. With Some(value) the
// parameter was expected with that value.
func ShouldHaveParameter(actual any, name string, value Detail) Factory {
	if !value.Present() {
		return bind(NameShouldHaveParameter, actual, name)
	}
	return bind(NameShouldHaveParameterWithValue, actual, name, value.Value())
}

func ShouldHaveNoParameters(actual any, names []string) Factory {
	if len(names) == 1 {
		return bind(NameShouldHaveNoParameters, actual, names[0])
	}
	return bind(NameShouldHaveNoParameters, actual, names)
}

// ShouldHaveSameContent reports line differences between two texts. actual
// and expected name the texts; the rendered deltas form the diagnostic tail.
func ShouldHaveSameContent(actual, expected any, deltas []diff.Delta) Factory {
	return bind(NameShouldHaveSameContent, actual, expected).WithDiff(diff.Report(deltas, nil))
}

func isComposite(v any) bool {
	switch reflect.ValueOf(v).Kind() {
	case reflect.Struct, reflect.Map, reflect.Slice, reflect.Array, reflect.Pointer:
		return true
	}
	return false
}

func typeName(t reflect.Type) represent.Unquoted {
	if t == nil {
		return "nil"
	}
	return represent.Unquoted(t.String())
}
