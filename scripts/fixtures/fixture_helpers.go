package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

type student struct {
	ID      int64
	Email   string
	Licence string
}

// leadingDigits cycles through every bucket of the default partitions.
var leadingDigits = []int64{1, 7, 8, 9}

// identifier returns a repeatable four digit anonymat number.
func identifier(index int) int64 {
	return leadingDigits[index%len(leadingDigits)]*1000 + int64(index/len(leadingDigits))%1000
}

// email generates a repeatable address for a fixture student.
func email(name string, index int) string {
	id := uuid.NewSHA1(fixtureNamespace, []byte(fmt.Sprintf("%s-%d", name, index)))
	return "etu-" + strings.SplitN(id.String(), "-", 2)[0] + "@example.org"
}

// frenchDecimal formats a mark with a comma separator as exam exports do.
func frenchDecimal(value float64) string {
	return strings.Replace(strconv.FormatFloat(value, 'f', -1, 64), ".", ",", 1)
}

// fixtureNamespace ensures stable addresses across fixture runs.
var fixtureNamespace = uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
