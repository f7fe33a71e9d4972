package formatter_test

import (
	"fmt"
	"time"

	"github.com/philipp01105/asynclog/core"
	"github.com/philipp01105/asynclog/formatter"
)

func ExampleNewTemplateFormatter() {
	f, err := formatter.NewTemplateFormatter("{asctime} [{level}] {name}: {msg} {meta}")
	if err != nil {
		panic(err)
	}

	r := core.NewRecordAt(time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC), "MyApp", core.InfoLevel,
		"message 3 from thread 1",
		core.Field{Key: "thread", Type: core.IntType, Int64: 1},
		core.Field{Key: "i", Type: core.IntType, Int64: 3},
	)

	fmt.Println(f.Format(r))
	// Output:
	// 2026-01-15T12:00:00.000000Z [INFO] MyApp: message 3 from thread 1 thread=1 i=3
}

func ExampleNewTemplateFormatter_unknownPlaceholder() {
	_, err := formatter.NewTemplateFormatter("{asctime} {thread}")
	fmt.Println(err)
	// Output:
	// invalid configuration: unknown placeholder {thread} in template "{asctime} {thread}"
}
