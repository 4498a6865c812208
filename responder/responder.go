// Package responder answers sensor requests on a raw TCP listener.
//
// Connections are served strictly one after another: the next Accept is not
// issued until the current connection has been answered and closed. There is
// no keep-alive, no pipelining and no timeout.
package responder

import (
	"bytes"
	"encoding/json"
	"log"
	"net"
	"strings"

	"PicoWeather/device"
	"PicoWeather/sensor"
	"PicoWeather/status"
)

// RequestBudget is the most request bytes read from a connection.
const RequestBudget = 1024

const corsHeaders = "Access-Control-Allow-Origin: *\r\n" +
	"Access-Control-Allow-Methods: GET, POST, OPTIONS\r\n" +
	"Access-Control-Allow-Headers: Content-Type\r\n"

const (
	preflightResponse = "HTTP/1.1 204 No Content\r\n" + corsHeaders + "\r\n"
	dataHeader        = "HTTP/1.1 200 OK\r\n" + "Content-Type: application/json\r\n" + corsHeaders + "\r\n"
)

type Handler struct {
	dev *device.Context
}

func New(dev *device.Context) *Handler {
	return &Handler{dev: dev}
}

// Serve answers connections from ln until Accept fails, and returns that error.
func (h *Handler) Serve(ln net.Listener) error {
	for {
		if err := h.ServeOne(ln); err != nil {
			return err
		}
	}
}

// ServeOne accepts and answers exactly one connection.
func (h *Handler) ServeOne(ln net.Listener) error {
	conn, err := ln.Accept()
	if err != nil {
		return err
	}
	h.ServeConn(conn)
	return nil
}

// ServeConn reads one chunk of request, answers it and closes conn.
//
// A chunk containing "OPTIONS" anywhere is treated as a CORS preflight. Every
// other request, an empty one included, gets a fresh reading; a failed
// reading is still sent as 200 OK, with the failure described in the body.
func (h *Handler) ServeConn(conn net.Conn) {
	defer conn.Close()
	log.Printf("Client connected from %s\n", conn.RemoteAddr())

	buf := make([]byte, RequestBudget)
	n, err := conn.Read(buf)
	if err != nil && n == 0 {
		// an empty request is still answered with a reading
		log.Printf("Empty request (%v)\n", err)
	}

	if strings.Contains(string(buf[:n]), "OPTIONS") {
		h.write(conn, []byte(preflightResponse))
		return
	}

	var resp bytes.Buffer
	resp.WriteString(dataHeader)
	resp.Write(h.reading())
	h.write(conn, resp.Bytes())
}

func (h *Handler) reading() []byte {
	h.dev.Indicator.Signal(status.Transferring)

	res := sensor.Measure(h.dev.Sensor)
	if res.OK() {
		body, err := json.Marshal(NewPayload(h.dev.Identity, res.Reading))
		if err == nil {
			return body
		}
		res.Err = &sensor.ReadError{Sensor: h.dev.Sensor.Name(), Err: err}
	}

	log.Printf("%s read failed: %v\n", res.Err.Sensor, res.Err)
	body, err := json.Marshal(NewErrorPayload(res.Err))
	if err != nil {
		log.Printf("Couldn't encode error payload: %v\n", err)
		body = []byte(`{"error":"` + ErrorMessage + `","details":""}`)
	}
	h.dev.Indicator.Signal(status.Error)
	return body
}

func (h *Handler) write(conn net.Conn, b []byte) {
	if _, err := conn.Write(b); err != nil {
		log.Printf("Couldn't send response: %v\n", err)
	}
}
