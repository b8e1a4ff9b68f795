package ui

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestModel(t *testing.T) {
	Convey("Given a notification line", t, func() {
		var m Model

		Convey("A notification is shown until its timer fires", func() {
			So(m.Update(Notification("seek failed")), ShouldNotBeNil)
			So(m.Text(), ShouldEqual, "seek failed")

			m.Update(ClearNotificationMsg{id: m.id})
			So(m.Text(), ShouldBeEmpty)
			So(m.View(80), ShouldBeEmpty)
		})

		Convey("An older timer does not hide a newer notification", func() {
			m.Update(Notification("first"))
			stale := ClearNotificationMsg{id: m.id}
			m.Update(Notification("second"))

			m.Update(stale)
			So(m.Text(), ShouldEqual, "second")
		})

		Convey("Notify produces a notification message", func() {
			So(Notify("hello")(), ShouldEqual, Notification("hello"))
		})
	})
}
