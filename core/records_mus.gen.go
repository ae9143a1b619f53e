// Code generated by musgen-go. DO NOT EDIT.

package core

import (
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

var (
	mapl2m4qx4XyBpkkjImCTHQzwΞΞ   = ord.NewMapSer[string, string](ord.String, ord.String)
	sliceGorq0BODNxsvQW5dPJrWkgΞΞ = ord.NewSliceSer[string](ord.String)
)

var KeyMUS = keyMUS{}

type keyMUS struct{}

func (s keyMUS) Marshal(v Key, bs []byte) (n int) {
	return varint.Uint64.Marshal(uint64(v), bs)
}

func (s keyMUS) Unmarshal(bs []byte) (v Key, n int, err error) {
	tmp, n, err := varint.Uint64.Unmarshal(bs)
	if err != nil {
		return
	}
	v = Key(tmp)
	return
}

func (s keyMUS) Size(v Key) (size int) {
	return varint.Uint64.Size(uint64(v))
}

func (s keyMUS) Skip(bs []byte) (n int, err error) {
	return varint.Uint64.Skip(bs)
}

var CandidateRecordMUS = candidateRecordMUS{}

type candidateRecordMUS struct{}

func (s candidateRecordMUS) Marshal(v CandidateRecord, bs []byte) (n int) {
	n = ord.String.Marshal(v.IdentityKey, bs)
	n += ord.String.Marshal(v.Name, bs[n:])
	n += ord.String.Marshal(v.Headline, bs[n:])
	n += ord.String.Marshal(v.Education, bs[n:])
	n += ord.String.Marshal(v.CurrentCompany, bs[n:])
	n += ord.String.Marshal(v.Location, bs[n:])
	n += sliceGorq0BODNxsvQW5dPJrWkgΞΞ.Marshal(v.SkillsTags, bs[n:])
	n += ord.String.Marshal(v.Summary, bs[n:])
	n += ord.String.Marshal(v.Source, bs[n:])
	n += raw.TimeUnixMicro.Marshal(v.IngestedAt, bs[n:])
	return n + mapl2m4qx4XyBpkkjImCTHQzwΞΞ.Marshal(v.Extra, bs[n:])
}

func (s candidateRecordMUS) Unmarshal(bs []byte) (v CandidateRecord, n int, err error) {
	v.IdentityKey, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.Name, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Headline, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Education, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.CurrentCompany, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Location, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.SkillsTags, n1, err = sliceGorq0BODNxsvQW5dPJrWkgΞΞ.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Summary, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Source, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.IngestedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Extra, n1, err = mapl2m4qx4XyBpkkjImCTHQzwΞΞ.Unmarshal(bs[n:])
	n += n1
	return
}

func (s candidateRecordMUS) Size(v CandidateRecord) (size int) {
	size = ord.String.Size(v.IdentityKey)
	size += ord.String.Size(v.Name)
	size += ord.String.Size(v.Headline)
	size += ord.String.Size(v.Education)
	size += ord.String.Size(v.CurrentCompany)
	size += ord.String.Size(v.Location)
	size += sliceGorq0BODNxsvQW5dPJrWkgΞΞ.Size(v.SkillsTags)
	size += ord.String.Size(v.Summary)
	size += ord.String.Size(v.Source)
	size += raw.TimeUnixMicro.Size(v.IngestedAt)
	return size + mapl2m4qx4XyBpkkjImCTHQzwΞΞ.Size(v.Extra)
}

func (s candidateRecordMUS) Skip(bs []byte) (n int, err error) {
	n, err = ord.String.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = sliceGorq0BODNxsvQW5dPJrWkgΞΞ.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = mapl2m4qx4XyBpkkjImCTHQzwΞΞ.Skip(bs[n:])
	n += n1
	return
}

var AuditEntryMUS = auditEntryMUS{}

type auditEntryMUS struct{}

func (s auditEntryMUS) Marshal(v AuditEntry, bs []byte) (n int) {
	n = ord.String.Marshal(v.Action, bs)
	n += ord.String.Marshal(v.User, bs[n:])
	n += mapl2m4qx4XyBpkkjImCTHQzwΞΞ.Marshal(v.Details, bs[n:])
	return n + raw.TimeUnixMicro.Marshal(v.Timestamp, bs[n:])
}

func (s auditEntryMUS) Unmarshal(bs []byte) (v AuditEntry, n int, err error) {
	v.Action, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.User, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Details, n1, err = mapl2m4qx4XyBpkkjImCTHQzwΞΞ.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Timestamp, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	return
}

func (s auditEntryMUS) Size(v AuditEntry) (size int) {
	size = ord.String.Size(v.Action)
	size += ord.String.Size(v.User)
	size += mapl2m4qx4XyBpkkjImCTHQzwΞΞ.Size(v.Details)
	return size + raw.TimeUnixMicro.Size(v.Timestamp)
}

func (s auditEntryMUS) Skip(bs []byte) (n int, err error) {
	n, err = ord.String.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = mapl2m4qx4XyBpkkjImCTHQzwΞΞ.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	return
}
