package faceuri

import (
	"errors"
	"path"
	"strconv"
)

type unixImpl struct{}

func (unixImpl) Verify(u *FaceUri) error {
	if u.User != nil || u.Host != "" || u.RawQuery != "" || u.Fragment != "" {
		return errors.New("unix URI must only have path")
	}
	if !path.IsAbs(u.Path) {
		return errors.New("unix URI must have absolute path")
	}
	u.Path = path.Clean(u.Path)
	return nil
}

type devImpl struct{}

func (devImpl) Verify(u *FaceUri) error {
	if e := rejectUPQF(u); e != nil {
		return e
	}
	if u.Hostname() == "" {
		return errors.New("dev URI must have device name")
	}
	if u.Port() != "" {
		return errors.New("dev URI cannot have port number")
	}
	return nil
}

type fdImpl struct{}

func (fdImpl) Verify(u *FaceUri) error {
	if e := rejectUPQF(u); e != nil {
		return e
	}
	if n, e := strconv.ParseUint(u.Host, 10, 31); e != nil || strconv.FormatUint(n, 10) != u.Host {
		return errors.New("fd URI must have file descriptor number")
	}
	return nil
}

type emptyImpl struct{}

func (emptyImpl) Verify(u *FaceUri) error {
	if e := rejectUPQF(u); e != nil {
		return e
	}
	if u.Host != "" || u.Opaque != "" {
		return errors.New(u.Scheme + " URI must be empty")
	}
	return nil
}

func init() {
	implByScheme["unix"] = unixImpl{}
	implByScheme["dev"] = devImpl{}
	implByScheme["fd"] = fdImpl{}
	implByScheme["internal"] = emptyImpl{}
	implByScheme["null"] = emptyImpl{}
	implByScheme["contentstore"] = emptyImpl{}
}
