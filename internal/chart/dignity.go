package chart

import "github.com/desimealsnow/auspicious-time/internal/ephemeris"

type dignityTable struct {
	own        []int
	exaltation []int
	fall       []int
	detriment  []int
}

// Signs are 1=Aries .. 12=Pisces.
var dignities = map[ephemeris.Body]dignityTable{
	ephemeris.Sun:     {own: []int{5}, exaltation: []int{1}, fall: []int{7}, detriment: []int{11}},
	ephemeris.Moon:    {own: []int{4}, exaltation: []int{2}, fall: []int{8}, detriment: []int{10}},
	ephemeris.Mars:    {own: []int{1, 8}, exaltation: []int{10}, fall: []int{4}, detriment: []int{7}},
	ephemeris.Mercury: {own: []int{3, 6}, exaltation: []int{6}, fall: []int{12}, detriment: []int{9}},
	ephemeris.Jupiter: {own: []int{9, 12}, exaltation: []int{4}, fall: []int{10}, detriment: []int{3}},
	ephemeris.Venus:   {own: []int{2, 7}, exaltation: []int{12}, fall: []int{6}, detriment: []int{1}},
	ephemeris.Saturn:  {own: []int{10, 11}, exaltation: []int{7}, fall: []int{1}, detriment: []int{4}},
}

func dignityOf(body ephemeris.Body, sign int) Dignity {
	table, ok := dignities[body]
	if !ok {
		return DignityNeutral
	}
	switch {
	case contains(table.own, sign):
		return DignityOwn
	case contains(table.exaltation, sign):
		return DignityExaltation
	case contains(table.fall, sign):
		return DignityFall
	case contains(table.detriment, sign):
		return DignityDetriment
	}
	return DignityNeutral
}

func contains(xs []int, x int) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}
