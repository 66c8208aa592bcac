// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dblp

import (
	"regexp"
	"strconv"
	"strings"
)

var digitRun = regexp.MustCompile(`[0-9]+`)

// CountPages turns a pages field into a page count. The field holds either
// a single page or a dash range, possibly several separated by commas, with
// arbitrary non-digit decoration ("AG83-AG120", "8e:1-8e:4", "P1.35"). The
// last run of digits in each endpoint is the page number. Parts with no
// digits, incomplete ranges, or more than one dash contribute nothing; a
// zero total yields the empty string.
func CountPages(pages string) string {
	count := 0
	for _, part := range strings.Split(pages, ",") {
		endpoints := strings.Split(part, "-")
		if len(endpoints) > 2 {
			continue
		}

		nums := make([]int, 0, 2)
		ok := true
		for _, endpoint := range endpoints {
			runs := digitRun.FindAllString(endpoint, -1)
			if len(runs) == 0 {
				ok = false
				break
			}
			n, err := strconv.Atoi(runs[len(runs)-1])
			if err != nil {
				ok = false
				break
			}
			nums = append(nums, n)
		}
		if !ok {
			continue
		}

		if len(nums) == 1 {
			count++
		} else {
			count += nums[1] - nums[0] + 1
		}
	}

	if count == 0 {
		return ""
	}
	return strconv.Itoa(count)
}
